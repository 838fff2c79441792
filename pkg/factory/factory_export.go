package factory

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/internal/utils/mailing"
	"turmeric-trace/pkg/catalog"
	"turmeric-trace/pkg/listing"

	"github.com/gofiber/fiber/v2/log"
	"github.com/shopspring/decimal"
)

var exportCSVHeader = []string{"export_date", "destination", "product_name", "lot_number", "batch_code", "quantity", "unit", "export_status"}

func (s *factoryService) exports(ctx context.Context, session domain.Session, factory entities.Factory) ([]entities.ExportHistory, error) {
	return s.factoryRepository.ListExports(ctx, session.BackendToken, factory.Key())
}

func exportResponses(records []entities.ExportHistory) []domain.ExportResponse {
	items := make([]domain.ExportResponse, 0, len(records))
	for _, e := range records {
		items = append(items, domain.NewExportResponse(e))
	}
	return items
}

func (s *factoryService) Export(ctx context.Context, session domain.Session, processingID string, req domain.ExportRequest) (listing.Page[domain.ExportResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}

	record, err := s.assignedProcessing(ctx, session, factory, processingID)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}
	if record.ProcessingStatus != domain.ProcessingStatusCompleted {
		return listing.Page[domain.ExportResponse]{}, domain.ErrProcessingNotCompleted
	}

	shipped, err := s.exports(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}
	used := decimal.NewFromFloat(req.Quantity)
	for _, e := range shipped {
		if e.FactoryProcessing != nil && e.FactoryProcessing.Key() == processingID {
			used = used.Add(decimal.NewFromFloat(e.Quantity))
		}
	}
	if used.GreaterThan(decimal.NewFromFloat(record.OutputQuantity)) {
		return listing.Page[domain.ExportResponse]{}, domain.ErrExportExceedsOutput
	}

	created, err := s.factoryRepository.CreateExport(ctx, session.BackendToken, map[string]any{
		"destination":        req.Destination,
		"quantity":           req.Quantity,
		"unit":               record.OutputUnit,
		"export_date":        req.ExportDate,
		"export_status":      domain.ExportStatusShipped,
		"factory_processing": processingID,
		"factory":            factory.Key(),
	})
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}
	log.Infof("export %s of %v %s recorded for processing %s", created.Key(), req.Quantity, record.OutputUnit, processingID)

	refreshed, err := s.exports(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}
	return listing.Paginate(exportResponses(refreshed), 1, listing.DefaultPageSize), nil
}

func (s *factoryService) GetExports(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.ExportResponse], error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}

	records, err := s.exports(ctx, session, factory)
	if err != nil {
		return listing.Page[domain.ExportResponse]{}, err
	}

	return listing.Apply(exportResponses(records), listing.Params{Page: q.Page, PageSize: q.Limit},
		listing.Contains(q.Search,
			func(r domain.ExportResponse) string { return r.Destination },
			func(r domain.ExportResponse) string { return r.ProductName },
			func(r domain.ExportResponse) string { return r.BatchCode },
		),
		listing.Equals(q.Status, func(r domain.ExportResponse) string { return r.ExportStatus }),
	), nil
}

// WriteExportsCSV writes the factory's full export history, newest first.
func (s *factoryService) WriteExportsCSV(ctx context.Context, session domain.Session, w io.Writer) error {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return err
	}

	records, err := s.exports(ctx, session, factory)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportCSVHeader); err != nil {
		return err
	}
	for _, e := range exportResponses(records) {
		if err := cw.Write([]string{
			csvText(e.ExportDate),
			csvText(e.Destination),
			csvText(e.ProductName),
			csvText(e.LotNumber),
			csvText(e.BatchCode),
			strconv.FormatFloat(e.Quantity, 'f', -1, 64),
			csvText(e.Unit),
			csvText(e.ExportStatus),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// csvText keeps spreadsheet apps from evaluating backend text as a formula.
func csvText(v string) string {
	if v == "" {
		return v
	}
	switch v[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + v
	}
	return v
}

func batchCodeOf(p entities.FactoryProcessing) string {
	if p.FactorySubmission == nil || p.FactorySubmission.Batch == nil {
		return ""
	}
	return p.FactorySubmission.Batch.BatchCode
}

func (s *factoryService) PublishQR(ctx context.Context, session domain.Session, processingID string) (domain.QRPublishResponse, error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return domain.QRPublishResponse{}, err
	}

	record, err := s.assignedProcessing(ctx, session, factory, processingID)
	if err != nil {
		return domain.QRPublishResponse{}, err
	}
	code := batchCodeOf(record)
	if code == "" {
		return domain.QRPublishResponse{}, domain.ErrProcessingWithoutBatchCode
	}

	traceURL := catalog.TraceURL(s.appURL, code)
	png, err := catalog.RenderQR(traceURL)
	if err != nil {
		return domain.QRPublishResponse{}, err
	}

	key, err := s.s3.UploadBytes(ctx, "trace-qr/"+code+".png", png, "image/png")
	if err != nil {
		return domain.QRPublishResponse{}, err
	}
	log.Infof("published QR for %s to %s", code, key)

	return domain.QRPublishResponse{
		BatchCode: code,
		TraceURL:  traceURL,
		ImageURL:  s.s3.GetPublicLinkKey(key),
	}, nil
}

func (s *factoryService) ShareTrace(ctx context.Context, session domain.Session, processingID string, req domain.ShareTraceRequest) error {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return err
	}

	record, err := s.assignedProcessing(ctx, session, factory, processingID)
	if err != nil {
		return err
	}
	code := batchCodeOf(record)
	if code == "" {
		return domain.ErrProcessingWithoutBatchCode
	}

	body, err := mailing.RenderTraceMail(mailing.TraceMail{
		ProductName: record.ProductName,
		LotNumber:   record.LotNumber,
		BatchCode:   code,
		Message:     req.Message,
		TraceURL:    catalog.TraceURL(s.appURL, code),
	})
	if err != nil {
		return err
	}

	if err := s.mailer.Send(req.Email, "Turmeric trace: "+record.ProductName, body); err != nil {
		return err
	}
	log.Infof("trace %s shared by factory %s", code, factory.Key())
	return nil
}
