package lab

import (
	"context"
	"errors"

	"turmeric-trace/domain"
	"turmeric-trace/entities"
	"turmeric-trace/pkg/chart"
	"turmeric-trace/pkg/listing"
	"turmeric-trace/pkg/strapi"

	"github.com/gofiber/fiber/v2/log"
)

const queuePreview = 5

type (
	LabService interface {
		GetSubmissions(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.LabSubmissionResponse], error)
		GetSubmission(ctx context.Context, session domain.Session, id string) (domain.LabSubmissionResponse, error)
		RecordResult(ctx context.Context, session domain.Session, id string, req domain.LabResultRequest) (listing.Page[domain.LabSubmissionResponse], error)
		GetHistory(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.LabSubmissionResponse], error)
		GetDashboard(ctx context.Context, session domain.Session) (domain.InspectorDashboard, error)
	}

	labService struct {
		labRepository LabRepository
	}
)

func NewLabService(labRepository LabRepository) LabService {
	return &labService{labRepository: labRepository}
}

// assignedLab resolves the lab the inspector works for.
func (s *labService) assignedLab(ctx context.Context, session domain.Session) (entities.Lab, error) {
	labs, err := s.labRepository.ListLabsForUser(ctx, session.BackendToken, session.UserID)
	if err != nil {
		return entities.Lab{}, err
	}
	if len(labs) == 0 {
		return entities.Lab{}, domain.ErrLabNotAssigned
	}
	return labs[0], nil
}

func (s *labService) submissions(ctx context.Context, session domain.Session, lab entities.Lab) ([]domain.LabSubmissionResponse, error) {
	subs, err := s.labRepository.ListSubmissions(ctx, session.BackendToken, lab.Key())
	if err != nil {
		return nil, err
	}

	items := make([]domain.LabSubmissionResponse, 0, len(subs))
	for _, sub := range subs {
		items = append(items, domain.NewLabSubmissionResponse(sub))
	}
	return items, nil
}

func searchSubmissions(term string) listing.Predicate[domain.LabSubmissionResponse] {
	return listing.Contains(term,
		func(r domain.LabSubmissionResponse) string { return r.BatchCode },
		func(r domain.LabSubmissionResponse) string { return r.QualityGrade },
		func(r domain.LabSubmissionResponse) string { return r.InspectorNotes },
	)
}

func byStatus(status string) listing.Predicate[domain.LabSubmissionResponse] {
	return listing.Equals(status, func(r domain.LabSubmissionResponse) string { return r.SubmissionStatus })
}

func (s *labService) GetSubmissions(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.LabSubmissionResponse], error) {
	lab, err := s.assignedLab(ctx, session)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}

	items, err := s.submissions(ctx, session, lab)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit}, searchSubmissions(q.Search), byStatus(q.Status)), nil
}

func (s *labService) GetSubmission(ctx context.Context, session domain.Session, id string) (domain.LabSubmissionResponse, error) {
	lab, err := s.assignedLab(ctx, session)
	if err != nil {
		return domain.LabSubmissionResponse{}, err
	}

	sub, err := s.assignedSubmission(ctx, session, lab, id)
	if err != nil {
		return domain.LabSubmissionResponse{}, err
	}
	return domain.NewLabSubmissionResponse(sub), nil
}

func (s *labService) assignedSubmission(ctx context.Context, session domain.Session, lab entities.Lab, id string) (entities.LabSubmission, error) {
	sub, err := s.labRepository.FindSubmission(ctx, session.BackendToken, id)
	if err != nil {
		if errors.Is(err, strapi.ErrNotFound) {
			return entities.LabSubmission{}, domain.ErrLabSubmissionNotFound
		}
		return entities.LabSubmission{}, err
	}
	if sub.Lab == nil || sub.Lab.Key() != lab.Key() {
		return entities.LabSubmission{}, domain.ErrLabSubmissionNotAssignedToUser
	}
	return sub, nil
}

func (s *labService) RecordResult(ctx context.Context, session domain.Session, id string, req domain.LabResultRequest) (listing.Page[domain.LabSubmissionResponse], error) {
	lab, err := s.assignedLab(ctx, session)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}

	sub, err := s.assignedSubmission(ctx, session, lab, id)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}
	if sub.SubmissionStatus != "" && sub.SubmissionStatus != domain.LabStatusPending {
		return listing.Page[domain.LabSubmissionResponse]{}, domain.ErrLabSubmissionClosed
	}

	if _, err := s.labRepository.UpdateSubmission(ctx, session.BackendToken, id, map[string]any{
		"submission_status":   req.SubmissionStatus,
		"quality_grade":       req.QualityGrade,
		"curcuminoid_content": req.CurcuminoidContent,
		"moisture_content":    req.MoistureContent,
		"test_date":           req.TestDate,
		"inspector_notes":     req.InspectorNotes,
	}); err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}
	log.Infof("lab %s recorded %s for submission %s", lab.Key(), req.SubmissionStatus, id)

	items, err := s.submissions(ctx, session, lab)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}
	return listing.Paginate(items, 1, listing.DefaultPageSize), nil
}

func decided(r domain.LabSubmissionResponse) bool {
	return r.SubmissionStatus == domain.LabStatusApproved || r.SubmissionStatus == domain.LabStatusRejected
}

func (s *labService) GetHistory(ctx context.Context, session domain.Session, q domain.PageQuery) (listing.Page[domain.LabSubmissionResponse], error) {
	lab, err := s.assignedLab(ctx, session)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}

	items, err := s.submissions(ctx, session, lab)
	if err != nil {
		return listing.Page[domain.LabSubmissionResponse]{}, err
	}

	return listing.Apply(items, listing.Params{Page: q.Page, PageSize: q.Limit}, decided, searchSubmissions(q.Search), byStatus(q.Status)), nil
}

func (s *labService) GetDashboard(ctx context.Context, session domain.Session) (domain.InspectorDashboard, error) {
	lab, err := s.assignedLab(ctx, session)
	if err != nil {
		return domain.InspectorDashboard{}, err
	}

	items, err := s.submissions(ctx, session, lab)
	if err != nil {
		return domain.InspectorDashboard{}, err
	}

	status := func(r domain.LabSubmissionResponse) string { return r.SubmissionStatus }
	counts := chart.GroupCount(items, status)
	approved := int(chart.Lookup(counts, domain.LabStatusApproved))
	rejected := int(chart.Lookup(counts, domain.LabStatusRejected))

	tested := listing.Filter(items, decided)
	queue := listing.Filter(items, byStatus(domain.LabStatusPending))
	if len(queue) > queuePreview {
		queue = queue[:queuePreview]
	}

	return domain.InspectorDashboard{
		Total:    len(items),
		Pending:  int(chart.Lookup(counts, domain.LabStatusPending)),
		Approved: approved,
		Rejected: rejected,
		PassRate: chart.Percent(approved, approved+rejected),
		ByGrade: chart.GroupCount(tested, func(r domain.LabSubmissionResponse) string {
			return r.QualityGrade
		}),
		MonthlyCurcuminoid: chart.MonthlyAverage(tested, func(r domain.LabSubmissionResponse) string {
			return r.TestDate
		}, func(r domain.LabSubmissionResponse) float64 {
			return r.CurcuminoidContent
		}),
		Queue: queue,
	}, nil
}
