package factory

import (
	"context"
	"errors"
	"io"
	"time"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/internal/utils/mailing"
	"turmeric-trace/internal/utils/storage"
	"turmeric-trace/pkg/listing"
	"turmeric-trace/pkg/strapi"

	"github.com/gofiber/fiber/v2/log"
)

type (
	FactoryService interface {
		GetSubmissions(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.FactorySubmissionResponse], error)
		DecideSubmission(ctx context.Context, session domain.Session, id string, req domain.SubmissionDecisionRequest) (listing.Page[domain.FactorySubmissionResponse], error)

		GetProcessings(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.ProcessingResponse], error)
		CreateProcessing(ctx context.Context, session domain.Session, req domain.ProcessingRequest) (listing.Page[domain.ProcessingResponse], error)
		UpdateProcessing(ctx context.Context, session domain.Session, id string, req domain.ProcessingRequest) (listing.Page[domain.ProcessingResponse], error)
		DeleteProcessing(ctx context.Context, session domain.Session, id string) (listing.Page[domain.ProcessingResponse], error)

		Export(ctx context.Context, session domain.Session, processingID string, req domain.ExportRequest) (listing.Page[domain.ExportResponse], error)
		GetExports(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.ExportResponse], error)
		WriteExportsCSV(ctx context.Context, session domain.Session, w io.Writer) error

		PublishQR(ctx context.Context, session domain.Session, processingID string) (domain.QRPublishResponse, error)
		ShareTrace(ctx context.Context, session domain.Session, processingID string, req domain.ShareTraceRequest) error

		GetDashboard(ctx context.Context, session domain.Session) (domain.FactoryDashboard, error)
	}

	factoryService struct {
		factoryRepository FactoryRepository
		s3                storage.AwsS3
		mailer            mailing.Mailer
		appURL            string
		now               func() time.Time
	}
)

func NewFactoryService(factoryRepository FactoryRepository, s3 storage.AwsS3, mailer mailing.Mailer, appURL string) FactoryService {
	return &factoryService{
		factoryRepository: factoryRepository,
		s3:                s3,
		mailer:            mailer,
		appURL:            appURL,
		now:               time.Now,
	}
}

func (s *factoryService) assignedFactory(ctx context.Context, session domain.Session) (entities.Factory, error) {
	factories, err := s.factoryRepository.ListFactoriesForUser(ctx, session.BackendToken, session.UserID)
	if err != nil {
		return entities.Factory{}, err
	}
	if len(factories) == 0 {
		return entities.Factory{}, domain.ErrFactoryNotAssigned
	}
	return factories[0], nil
}

func (s *factoryService) submissions(ctx context.Context, session domain.Session, factory entities.Factory) ([]domain.FactorySubmissionResponse, error) {
	subs, err := s.factoryRepository.ListSubmissions(ctx, session.BackendToken, factory.Key())
	if err != nil {
		return nil, err
	}

	items := make([]domain.FactorySubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, domain.NewFactorySubmissionResponse(sub))
	}
	return items, nil
}

func (s *factoryService) GetSubmissions(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.FactorySubmissionResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}

	items, err := s.submissions(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(r domain.FactorySubmissionResponse) string { return r.BatchCode },
			func(r domain.FactorySubmissionResponse) string { return r.FarmName },
		),
		listing.Equals(q.Status, func(r domain.FactorySubmissionResponse) string { return r.SubmissionStatus }),
	), nil
}

func (s *factoryService) assignedSubmission(ctx context.Context, session domain.Session, factory entities.Factory, id string) (entities.FactorySubmission, error) {
	sub, err := s.factoryRepository.FindSubmission(ctx, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return entities.FactorySubmission{}, domain.ErrFactorySubmissionNotFound
		}
		return entities.FactorySubmission{}, err
	}
	if sub.Factory == nil || sub.Factory.Key() != factory.Key() {
		return entities.FactorySubmission{}, domain.ErrNotOwner
	}
	return sub, nil
}

func (s *factoryService) DecideSubmission(ctx context.Context, session domain.Session, id string, req domain.SubmissionDecisionRequest) (listing.Page[domain.FactorySubmissionResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}

	sub, err := s.assignedSubmission(ctx, session, factory, id)
	if err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}
	if sub.SubmissionStatus != domain.FactoryStatusWaiting {
		return listing.Page[domain.FactorySubmissionResponse]{}, domain.ErrSubmissionAlreadyDecided
	}

	data := map[string]any{"submission_status": req.SubmissionStatus}
	if req.Notes != "" {
		data["notes"] = req.Notes
	}
	if _, err := s.factoryRepository.UpdateSubmission(ctx, session.BackendToken, id, data); err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}
	log.Infof("factory %s marked submission %s as %s", factory.Key(), id, req.SubmissionStatus)

	items, err := s.submissions(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.FactorySubmissionResponse]{}, err
	}
	return listing.Paginate(items, 1, listing.DefaultPageSize), nil
}

func (s *factoryService) processings(ctx context.Context, session domain.Session, factory entities.Factory) ([]domain.ProcessingResponse, error) {
	records, err := s.factoryRepository.ListProcessings(ctx, session.BackendToken, factory.Key())
	if err != nil {
		return nil, err
	}

	items := make([]domain.ProcessingResponse, 0, len(records))
	for _, p := range records {
		items = append(items, domain.NewProcessingResponse(p))
	}
	return items, nil
}

func (s *factoryService) GetProcessings(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.ProcessingResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	items, err := s.processings(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(r domain.ProcessingResponse) string { return r.ProductName },
			func(r domain.ProcessingResponse) string { return r.LotNumber },
			func(r domain.ProcessingResponse) string { return r.BatchCode },
		),
		listing.Equals(q.Status, func(r domain.ProcessingResponse) string { return r.ProcessingStatus }),
	), nil
}

func processingData(req domain.ProcessingRequest) map[string]any {
	status := req.ProcessingStatus
	if status == "" {
		status = domain.ProcessingStatusInProgress
	}
	return map[string]any{
		"product_name":      req.ProductName,
		"processing_method": req.ProcessingMethod,
		"processing_date":   req.ProcessingDate,
		"output_quantity":   req.OutputQuantity,
		"output_unit":       req.OutputUnit,
		"lot_number":        req.LotNumber,
		"processing_status": status,
		"operator":          req.Operator,
	}
}

func (s *factoryService) CreateProcessing(ctx context.Context, session domain.Session, req domain.ProcessingRequest) (listing.Page[domain.ProcessingResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	sub, err := s.assignedSubmission(ctx, session, factory, req.FactorySubmission)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	if sub.SubmissionStatus != domain.FactoryStatusReceived {
		return listing.Page[domain.ProcessingResponse]{}, domain.ErrSubmissionNotReceived
	}

	data := processingData(req)
	data["factory_submission"] = req.FactorySubmission
	data["factory"] = factory.Key()

	record, err := s.factoryRepository.CreateProcessing(ctx, session.BackendToken, data)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	if _, err := s.factoryRepository.UpdateSubmission(ctx, session.BackendToken, req.FactorySubmission, map[string]any{
		"submission_status": domain.FactoryStatusProcessed,
	}); err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	log.Infof("processing %s created from submission %s", record.Key(), req.FactorySubmission)

	items, err := s.processings(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	return listing.Paginate(items, 1, listing.DefaultPageSize), nil
}

func (s *factoryService) assignedProcessing(ctx context.Context, session domain.Session, factory entities.Factory, id string) (entities.FactoryProcessing, error) {
	record, err := s.factoryRepository.FindProcessing(ctx, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return entities.FactoryProcessing{}, domain.ErrProcessingNotFound
		}
		return entities.FactoryProcessing{}, err
	}
	if record.Factory == nil || record.Factory.Key() != factory.Key() {
		return entities.FactoryProcessing{}, domain.ErrNotOwner
	}
	return record, nil
}

func (s *factoryService) UpdateProcessing(ctx context.Context, session domain.Session, id string, req domain.ProcessingRequest) (listing.Page[domain.ProcessingResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	if _, err := s.assignedProcessing(ctx, session, factory, id); err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	if _, err := s.factoryRepository.UpdateProcessing(ctx, session.BackendToken, id, processingData(req)); err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	items, err := s.processings(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	return listing.Paginate(items, 1, listing.DefaultPageSize), nil
}

func (s *factoryService) DeleteProcessing(ctx context.Context, session domain.Session, id string) (listing.Page[domain.ProcessingResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	if _, err := s.assignedProcessing(ctx, session, factory, id); err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}

	if err := s.factoryRepository.DeleteProcessing(ctx, session.BackendToken, id); err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	log.Infof("processing %s deleted by factory %s", id, factory.Key())

	items, err := s.processings(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ProcessingResponse]{}, err
	}
	return listing.Paginate(items, 1, listing.DefaultPageSize), nil
}
