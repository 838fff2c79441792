package catalog

import (
	"context"
	"sort"
	"strings"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/chart"
	"turmeric-trace/pkg/listing"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	StagePlanting   = "planting"
	StageHarvest    = "harvest"
	StageLab        = "lab"
	StageFactory    = "factory"
	StageProcessing = "processing"
)

type (
	CatalogService interface {
		GetCatalog(ctx context.Context, q domain.PageQuery) (listing.Page[domain.CatalogItem], error)
		Trace(ctx context.Context, batchCode string) (domain.TraceResponse, error)
		TraceQR(ctx context.Context, batchCode string) ([]byte, error)
	}

	catalogService struct {
		catalogRepository CatalogRepository
		appURL            string
	}
)

func NewCatalogService(catalogRepository CatalogRepository, appURL string) CatalogService {
	return &catalogService{
		catalogRepository: catalogRepository,
		appURL:            appURL,
	}
}

func (s *catalogService) GetCatalog(ctx context.Context, q domain.PageQuery) (listing.Page[domain.CatalogItem], error) {
	records, err := s.catalogRepository.ListCompletedProcessings(ctx)
	if err != nil {
		return listing.Page[domain.CatalogItem]{}, err
	}

	items := make([]domain.CatalogItem, 0, len(records))
	for _, p := range records {
		item := domain.CatalogItem{
			ID:               p.Key(),
			ProductName:      p.ProductName,
			LotNumber:        p.LotNumber,
			ProcessingMethod: p.ProcessingMethod,
			ProcessingDate:   p.ProcessingDate,
			OutputQuantity:   p.OutputQuantity,
			OutputUnit:       p.OutputUnit,
		}
		if p.Factory != nil {
			item.FactoryName = p.Factory.FactoryName
		}
		if p.FactorySubmission != nil && p.FactorySubmission.Batch != nil {
			item.BatchCode = p.FactorySubmission.Batch.BatchCode
			item.TraceURL = TraceURL(s.appURL, item.BatchCode)
		}
		items = append(items, item)
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(c domain.CatalogItem) string { return c.ProductName },
			func(c domain.CatalogItem) string { return c.LotNumber },
			func(c domain.CatalogItem) string { return c.FactoryName },
			func(c domain.CatalogItem) string { return c.BatchCode },
		),
		listing.Equals(q.Status, func(c domain.CatalogItem) string { return c.ProcessingMethod }),
	), nil
}

// Trace stitches a batch with its farm, harvests, lab results, factory
// submissions and products. The dependent lookups run concurrently once the
// batch is known.
func (s *catalogService) Trace(ctx context.Context, batchCode string) (domain.TraceResponse, error) {
	code := strings.TrimSpace(batchCode)
	if code == "" {
		return domain.TraceResponse{}, domain.ErrTraceNotFound
	}

	batch, err := s.catalogRepository.FindBatchByCode(ctx, code)
	if err != nil {
		return domain.TraceResponse{}, err
	}

	var (
		harvests    []entities.HarvestRecord
		labs        []entities.LabSubmission
		submissions []entities.FactorySubmission
		processings []entities.FactoryProcessing
	)
	id := batch.Key()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		harvests, err = s.catalogRepository.ListHarvests(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		labs, err = s.catalogRepository.ListLabSubmissions(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		submissions, err = s.catalogRepository.ListFactorySubmissions(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		processings, err = s.catalogRepository.ListProcessings(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.TraceResponse{}, err
	}

	res := domain.TraceResponse{
		BatchCode:    batch.BatchCode,
		PlantVariety: batch.PlantVariety,
		BatchStatus:  batch.BatchStatus,
		PlantingDate: batch.PlantingDate,
		Harvests:     make([]domain.HarvestResponse, 0, len(harvests)),
		LabResults:   make([]domain.LabSubmissionResponse, 0, len(labs)),
		Submissions:  make([]domain.FactorySubmissionResponse, 0, len(submissions)),
		Products:     make([]domain.ProcessingResponse, 0, len(processings)),
		TraceURL:     TraceURL(s.appURL, batch.BatchCode),
	}
	if f := batch.Farm; f != nil {
		res.Farm = &domain.TraceFarm{
			FarmName:          f.FarmName,
			Location:          f.Location,
			AreaRai:           f.AreaRai,
			CultivationMethod: f.CultivationMethod,
			Certification:     f.Certification,
		}
	}

	timeline := []domain.TraceEvent{{Stage: StagePlanting, Date: batch.PlantingDate, Title: "Planted " + batch.PlantVariety}}
	for _, h := range harvests {
		r := domain.NewHarvestResponse(h)
		res.Harvests = append(res.Harvests, r)
		timeline = append(timeline, domain.TraceEvent{Stage: StageHarvest, Date: h.HarvestDate, Title: "Harvested", Detail: formatQuantity(r.YieldKg, "kg")})
	}
	for _, l := range labs {
		res.LabResults = append(res.LabResults, domain.NewLabSubmissionResponse(l))
		date := l.TestDate
		if date == "" {
			date = l.SubmissionDate
		}
		detail := l.SubmissionStatus
		if l.QualityGrade != "" {
			detail += ", grade " + l.QualityGrade
		}
		timeline = append(timeline, domain.TraceEvent{Stage: StageLab, Date: date, Title: "Quality inspection", Detail: detail})
	}
	for _, sub := range submissions {
		res.Submissions = append(res.Submissions, domain.NewFactorySubmissionResponse(sub))
		title := "Sent to factory"
		if sub.Factory != nil {
			title = "Sent to " + sub.Factory.FactoryName
		}
		timeline = append(timeline, domain.TraceEvent{Stage: StageFactory, Date: sub.SubmissionDate, Title: title, Detail: formatQuantity(sub.Quantity, sub.Unit)})
	}
	for _, p := range processings {
		res.Products = append(res.Products, domain.NewProcessingResponse(p))
		timeline = append(timeline, domain.TraceEvent{Stage: StageProcessing, Date: p.ProcessingDate, Title: p.ProductName, Detail: p.ProcessingMethod})
	}

	res.Timeline = sortTimeline(timeline)
	return res, nil
}

func formatQuantity(v float64, unit string) string {
	return strings.TrimSpace(decimal.NewFromFloat(v).String() + " " + unit)
}

// sortTimeline orders events by date, undated events last. Equal dates keep
// the stage order they were appended in.
func sortTimeline(events []domain.TraceEvent) []domain.TraceEvent {
	sort.SliceStable(events, func(i, j int) bool {
		ti, iok := chart.ParseDate(events[i].Date)
		tj, jok := chart.ParseDate(events[j].Date)
		switch {
		case iok && jok:
			return ti.Before(tj)
		case iok != jok:
			return iok
		}
		return false
	})
	return events
}

func (s *catalogService) TraceQR(ctx context.Context, batchCode string) ([]byte, error) {
	batch, err := s.catalogRepository.FindBatchByCode(ctx, strings.TrimSpace(batchCode))
	if err != nil {
		return nil, err
	}
	return RenderQR(TraceURL(s.appURL, batch.BatchCode))
}
