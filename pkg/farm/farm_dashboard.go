package farm

import (
	"context"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/chart"

	"golang.org/x/sync/errgroup"
)

const recentHarvestCount = 5

func (s *farmService) GetDashboard(ctx context.Context, session domain.Session) (domain.FarmerDashboard, error) {
	var (
		farms    []entities.Farm
		batches  []entities.Batch
		harvests []entities.HarvestRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		farms, err = s.farmRepository.ListFarms(gctx, session.BackendToken, session.UserID)
		return err
	})
	g.Go(func() (err error) {
		batches, err = s.farmRepository.ListBatches(gctx, session.BackendToken, session.UserID)
		return err
	})
	g.Go(func() (err error) {
		harvests, err = s.farmRepository.ListHarvests(gctx, session.BackendToken, session.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.FarmerDashboard{}, err
	}

	kg := func(h entities.HarvestRecord) float64 { return domain.ToKg(h.YieldAmount, h.YieldUnit) }

	recent := make([]domain.HarvestResponse, 0, recentHarvestCount)
	for _, h := range harvests {
		if len(recent) == recentHarvestCount {
			break
		}
		recent = append(recent, domain.NewHarvestResponse(h))
	}

	return domain.FarmerDashboard{
		FarmCount:    len(farms),
		BatchCount:   len(batches),
		TotalYieldKg: chart.Sum(harvests, kg),
		BatchesStatus: chart.GroupCount(batches, func(b entities.Batch) string {
			return b.BatchStatus
		}),
		MonthlyYieldKg: chart.Monthly(harvests, func(h entities.HarvestRecord) string {
			return h.HarvestDate
		}, kg),
		YieldByFarmKg: chart.GroupSum(harvests, func(h entities.HarvestRecord) string {
			if h.Batch == nil || h.Batch.Farm == nil {
				return ""
			}
			return h.Batch.Farm.FarmName
		}, kg),
		RecentHarvests: recent,
	}, nil
}
