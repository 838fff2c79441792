package farm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/listing"
	"turmeric-trace/pkg/strapi"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

type (
	FarmService interface {
		GetFarms(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.FarmResponse], error)
		CreateFarm(ctx context.Context, session domain.Session, req domain.FarmRequest) (listing.Page[domain.FarmResponse], error)
		UpdateFarm(ctx context.Context, session domain.Session, id string, req domain.FarmRequest) (listing.Page[domain.FarmResponse], error)
		DeleteFarm(ctx context.Context, session domain.Session, id string) (listing.Page[domain.FarmResponse], error)

		GetBatches(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.BatchResponse], error)
		CreateBatch(ctx context.Context, session domain.Session, req domain.BatchRequest) (listing.Page[domain.BatchResponse], error)
		UpdateBatch(ctx context.Context, session domain.Session, id string, req domain.BatchRequest) (listing.Page[domain.BatchResponse], error)
		DeleteBatch(ctx context.Context, session domain.Session, id string) (listing.Page[domain.BatchResponse], error)

		GetHarvests(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.HarvestResponse], error)
		CreateHarvest(ctx context.Context, session domain.Session, req domain.HarvestRequest) (listing.Page[domain.HarvestResponse], error)

		SubmitToLab(ctx context.Context, session domain.Session, req domain.LabSubmitRequest) (listing.Page[domain.BatchResponse], error)
		SubmitToFactory(ctx context.Context, session domain.Session, req domain.FactorySubmitRequest) (listing.Page[domain.BatchResponse], error)

		GetCropTypes(ctx context.Context, session domain.Session) ([]domain.ReferenceResponse, error)
		GetDashboard(ctx context.Context, session domain.Session) (domain.FarmerDashboard, error)
	}

	farmService struct {
		farmRepository FarmRepository
		now            func() time.Time
	}
)

func NewFarmService(farmRepository FarmRepository) FarmService {
	return &farmService{
		farmRepository: farmRepository,
		now:            time.Now,
	}
}

func (s *farmService) GetFarms(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.FarmResponse], error) {
	farms, err := s.farmRepository.ListFarms(ctx, session.BackendToken, session.UserID)
	if err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}

	items := make([]domain.FarmResponse, 0, len(farms))
	for _, f := range farms {
		items = append(items, domain.NewFarmResponse(f))
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(f domain.FarmResponse) string { return f.FarmName },
			func(f domain.FarmResponse) string { return f.Location },
		),
	), nil
}

func farmData(req domain.FarmRequest) map[string]any {
	data := map[string]any{
		"farm_name":          req.FarmName,
		"location":           req.Location,
		"area_rai":           req.AreaRai,
		"latitude":           req.Latitude,
		"longitude":          req.Longitude,
		"cultivation_method": req.CultivationMethod,
		"certification":      req.Certification,
	}
	if req.CropType != "" {
		data["crop_type"] = req.CropType
	}
	return data
}

func (s *farmService) CreateFarm(ctx context.Context, session domain.Session, req domain.FarmRequest) (listing.Page[domain.FarmResponse], error) {
	data := farmData(req)
	data["user"] = domain.UserRef(session.UserID)

	farm, err := s.farmRepository.CreateFarm(ctx, session.BackendToken, data)
	if err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}
	log.Infof("farm %s created by user %s", farm.Key(), session.UserID)

	return s.GetFarms(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) ownedFarm(ctx context.Context, session domain.Session, id string) (entities.Farm, error) {
	farm, err := s.farmRepository.FindFarm(ctx, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return entities.Farm{}, domain.ErrFarmNotFound
		}
		return entities.Farm{}, err
	}
	if !domain.OwnedBy(farm.User, session.UserID) {
		return entities.Farm{}, domain.ErrNotOwner
	}
	return farm, nil
}

func (s *farmService) UpdateFarm(ctx context.Context, session domain.Session, id string, req domain.FarmRequest) (listing.Page[domain.FarmResponse], error) {
	if _, err := s.ownedFarm(ctx, session, id); err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}

	if _, err := s.farmRepository.UpdateFarm(ctx, session.BackendToken, id, farmData(req)); err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}

	return s.GetFarms(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) DeleteFarm(ctx context.Context, session domain.Session, id string) (listing.Page[domain.FarmResponse], error) {
	if _, err := s.ownedFarm(ctx, session, id); err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}

	if err := s.farmRepository.DeleteFarm(ctx, session.BackendToken, id); err != nil {
		return listing.Page[domain.FarmResponse]{}, err
	}
	log.Infof("farm %s deleted by user %s", id, session.UserID)

	return s.GetFarms(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) GetBatches(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.BatchResponse], error) {
	batches, err := s.farmRepository.ListBatches(ctx, session.BackendToken, session.UserID)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	items := make([]domain.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, domain.NewBatchResponse(b))
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(b domain.BatchResponse) string { return b.BatchCode },
			func(b domain.BatchResponse) string { return b.PlantVariety },
			func(b domain.BatchResponse) string { return b.FarmName },
		),
		listing.Equals(q.Status, func(b domain.BatchResponse) string { return b.BatchStatus }),
	), nil
}

// NewBatchCode returns a code of the form TMR-YYYYMMDD-XXXXXX.
func NewBatchCode(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("TMR-%s-%s", now.Format("20060102"), suffix)
}

func (s *farmService) CreateBatch(ctx context.Context, session domain.Session, req domain.BatchRequest) (listing.Page[domain.BatchResponse], error) {
	if _, err := s.ownedFarm(ctx, session, req.Farm); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	code := strings.TrimSpace(req.BatchCode)
	if code == "" {
		code = NewBatchCode(s.now())
	}
	status := req.BatchStatus
	if status == "" {
		status = domain.BatchStatusPlanted
	}

	batch, err := s.farmRepository.CreateBatch(ctx, session.BackendToken, map[string]any{
		"batch_id":              code,
		"batch_status":          status,
		"plant_variety":         req.PlantVariety,
		"planting_date":         req.PlantingDate,
		"expected_harvest_date": nullableDate(req.ExpectedHarvestDate),
		"cultivation_method":    req.CultivationMethod,
		"farm":                  req.Farm,
	})
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	log.Infof("batch %s (%s) created by user %s", batch.Key(), code, session.UserID)

	return s.GetBatches(ctx, session, domain.PageQuery{Page: 1})
}

func nullableDate(d string) any {
	if d == "" {
		return nil
	}
	return d
}

func (s *farmService) ownedBatch(ctx context.Context, session domain.Session, id string) (entities.Batch, error) {
	batch, err := s.farmRepository.FindBatch(ctx, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return entities.Batch{}, domain.ErrBatchNotFound
		}
		return entities.Batch{}, err
	}
	if batch.Farm == nil || !domain.OwnedBy(batch.Farm.User, session.UserID) {
		return entities.Batch{}, domain.ErrNotOwner
	}
	return batch, nil
}

func (s *farmService) UpdateBatch(ctx context.Context, session domain.Session, id string, req domain.BatchRequest) (listing.Page[domain.BatchResponse], error) {
	batch, err := s.ownedBatch(ctx, session, id)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	data := map[string]any{
		"plant_variety":         req.PlantVariety,
		"planting_date":         req.PlantingDate,
		"expected_harvest_date": nullableDate(req.ExpectedHarvestDate),
		"cultivation_method":    req.CultivationMethod,
	}
	if req.BatchStatus != "" {
		data["batch_status"] = req.BatchStatus
	}
	if req.Farm != "" && req.Farm != batch.Farm.Key() {
		if _, err := s.ownedFarm(ctx, session, req.Farm); err != nil {
			return listing.Page[domain.BatchResponse]{}, err
		}
		data["farm"] = req.Farm
	}

	if _, err := s.farmRepository.UpdateBatch(ctx, session.BackendToken, id, data); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	return s.GetBatches(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) DeleteBatch(ctx context.Context, session domain.Session, id string) (listing.Page[domain.BatchResponse], error) {
	if _, err := s.ownedBatch(ctx, session, id); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	if err := s.farmRepository.DeleteBatch(ctx, session.BackendToken, id); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	log.Infof("batch %s deleted by user %s", id, session.UserID)

	return s.GetBatches(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) GetHarvests(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.HarvestResponse], error) {
	records, err := s.farmRepository.ListHarvests(ctx, session.BackendToken, session.UserID)
	if err != nil {
		return listing.Page[domain.HarvestResponse]{}, err
	}

	items := make([]domain.HarvestResponse, 0, len(records))
	for _, h := range records {
		items = append(items, domain.NewHarvestResponse(h))
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(h domain.HarvestResponse) string { return h.BatchCode },
			func(h domain.HarvestResponse) string { return h.HarvestMethod },
		),
		listing.Equals(q.Status, func(h domain.HarvestResponse) string { return h.QualityGrade }),
	), nil
}

func (s *farmService) CreateHarvest(ctx context.Context, session domain.Session, req domain.HarvestRequest) (listing.Page[domain.HarvestResponse], error) {
	batch, err := s.ownedBatch(ctx, session, req.Batch)
	if err != nil {
		return listing.Page[domain.HarvestResponse]{}, err
	}

	record, err := s.farmRepository.CreateHarvest(ctx, session.BackendToken, map[string]any{
		"harvest_date":   req.HarvestDate,
		"yield_amount":   req.YieldAmount,
		"yield_unit":     req.YieldUnit,
		"quality_grade":  req.QualityGrade,
		"harvest_method": req.HarvestMethod,
		"notes":          req.Notes,
		"batch":          req.Batch,
	})
	if err != nil {
		return listing.Page[domain.HarvestResponse]{}, err
	}
	log.Infof("harvest %s recorded for batch %s", record.Key(), batch.BatchCode)

	if batch.BatchStatus == "" || batch.BatchStatus == domain.BatchStatusPlanted {
		if _, err := s.farmRepository.UpdateBatch(ctx, session.BackendToken, req.Batch, map[string]any{
			"batch_status": domain.BatchStatusHarvested,
		}); err != nil {
			return listing.Page[domain.HarvestResponse]{}, err
		}
	}

	return s.GetHarvests(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) SubmitToLab(ctx context.Context, session domain.Session, req domain.LabSubmitRequest) (listing.Page[domain.BatchResponse], error) {
	batch, err := s.ownedBatch(ctx, session, req.Batch)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	harvested := false
	for _, h := range batch.HarvestRecords {
		if h.Key() == req.HarvestRecord {
			harvested = true
			break
		}
	}
	if !harvested {
		return listing.Page[domain.BatchResponse]{}, domain.ErrBatchNotHarvested
	}

	existing, err := s.farmRepository.ListLabSubmissions(ctx, session.BackendToken, req.Batch)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	for _, sub := range existing {
		if sub.SubmissionStatus == domain.LabStatusPending {
			return listing.Page[domain.BatchResponse]{}, domain.ErrBatchAlreadySubmitted
		}
	}

	sub, err := s.farmRepository.CreateLabSubmission(ctx, session.BackendToken, map[string]any{
		"submission_status": domain.LabStatusPending,
		"submission_date":   domain.Today(s.now()),
		"batch":             req.Batch,
		"harvest_record":    req.HarvestRecord,
		"lab":               req.Lab,
	})
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	if _, err := s.farmRepository.UpdateBatch(ctx, session.BackendToken, req.Batch, map[string]any{
		"batch_status": domain.BatchStatusSubmittedLab,
	}); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	log.Infof("batch %s submitted to lab %s as %s", batch.BatchCode, req.Lab, sub.Key())

	return s.GetBatches(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) SubmitToFactory(ctx context.Context, session domain.Session, req domain.FactorySubmitRequest) (listing.Page[domain.BatchResponse], error) {
	batch, err := s.ownedBatch(ctx, session, req.Batch)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	results, err := s.farmRepository.ListLabSubmissions(ctx, session.BackendToken, req.Batch)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	var approved *entities.LabSubmission
	for i := range results {
		if results[i].SubmissionStatus == domain.LabStatusApproved {
			approved = &results[i]
		}
	}
	if approved == nil {
		return listing.Page[domain.BatchResponse]{}, domain.ErrBatchNotApproved
	}

	open, err := s.farmRepository.ListFactorySubmissions(ctx, session.BackendToken, req.Batch)
	if err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	for _, sub := range open {
		if sub.SubmissionStatus == domain.FactoryStatusWaiting || sub.SubmissionStatus == domain.FactoryStatusReceived {
			return listing.Page[domain.BatchResponse]{}, domain.ErrBatchAlreadySubmitted
		}
	}

	if _, err := s.farmRepository.CreateFactorySubmission(ctx, session.BackendToken, map[string]any{
		"submission_status":     domain.FactoryStatusWaiting,
		"submission_date":       domain.Today(s.now()),
		"quantity":              req.Quantity,
		"unit":                  req.Unit,
		"notes":                 req.Notes,
		"batch":                 req.Batch,
		"factory":               req.Factory,
		"lab_submission_record": approved.Key(),
	}); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}

	if _, err := s.farmRepository.UpdateBatch(ctx, session.BackendToken, req.Batch, map[string]any{
		"batch_status": domain.BatchStatusSubmittedFactory,
	}); err != nil {
		return listing.Page[domain.BatchResponse]{}, err
	}
	log.Infof("batch %s submitted to factory %s", batch.BatchCode, req.Factory)

	return s.GetBatches(ctx, session, domain.PageQuery{Page: 1})
}

func (s *farmService) GetCropTypes(ctx context.Context, session domain.Session) ([]domain.ReferenceResponse, error) {
	types, err := s.farmRepository.ListCropTypes(ctx, session.BackendToken)
	if err != nil {
		return nil, err
	}

	res := make([]domain.ReferenceResponse, 0, len(types))
	for _, t := range types {
		res = append(res, domain.ReferenceResponse{ID: t.Key(), Name: t.Name, Description: t.Description})
	}
	return res, nil
}
