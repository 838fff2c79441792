package factory

import (
	"context"

	"turmeric-trace/domain"
	"turmeric-trace/pkg/chart"

	"golang.org/x/sync/errgroup"
)

const recentSubmissionCount = 5

func (s *factoryService) GetDashboard(ctx context.Context, session domain.Session) (domain.FactoryDashboard, error) {
	factory, err := s.assignedFactory(ctx, session)
	if err != nil {
		return domain.FactoryDashboard{}, err
	}

	var (
		subs        []domain.FactorySubmissionResponse
		processings []domain.ProcessingResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		subs, err = s.submissions(gctx, session, factory)
		return err
	})
	g.Go(func() (err error) {
		processings, err = s.processings(gctx, session, factory)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.FactoryDashboard{}, err
	}

	byStatus := chart.GroupCount(subs, func(r domain.FactorySubmissionResponse) string { return r.SubmissionStatus })
	processingByStatus := chart.GroupCount(processings, func(r domain.ProcessingResponse) string { return r.ProcessingStatus })
	output := func(r domain.ProcessingResponse) float64 { return r.OutputQuantity }

	recent := subs
	if len(recent) > recentSubmissionCount {
		recent = recent[:recentSubmissionCount]
	}

	return domain.FactoryDashboard{
		SubmissionCount:   len(subs),
		WaitingCount:      int(chart.Lookup(byStatus, domain.FactoryStatusWaiting)),
		ProcessingCount:   int(chart.Lookup(processingByStatus, domain.ProcessingStatusInProgress)),
		CompletedCount:    int(chart.Lookup(processingByStatus, domain.ProcessingStatusCompleted)),
		TotalOutput:       chart.Sum(processings, output),
		SubmissionsStatus: byStatus,
		MonthlyOutput: chart.Monthly(processings, func(r domain.ProcessingResponse) string {
			return r.ProcessingDate
		}, output),
		OutputByProduct: chart.GroupSum(processings, func(r domain.ProcessingResponse) string {
			return r.ProductName
		}, output),
		RecentSubmissions: recent,
	}, nil
}
