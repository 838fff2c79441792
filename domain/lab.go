package domain

import (
	"errors"

	"turmeric-trace/pkg/chart"
)

const (
	LabStatusPending  = "Pending"
	LabStatusApproved = "Approved"
	LabStatusRejected = "Rejected"
)

var (
	MessageSuccessGetLabSubmissions   = "lab submissions retrieved successfully"
	MessageSuccessRecordLabResult     = "lab result recorded successfully"
	MessageSuccessGetInspectorStats   = "inspector dashboard retrieved successfully"
	MessageSuccessGetLabs             = "labs retrieved successfully"
	MessageFailedGetLabSubmissions    = "failed to retrieve lab submissions"
	MessageFailedRecordLabResult      = "failed to record lab result"
	MessageFailedGetInspectorStats    = "failed to retrieve inspector dashboard"
	MessageFailedGetLabs              = "failed to retrieve labs"
	ErrLabSubmissionNotFound          = errors.New("lab submission not found")
	ErrLabSubmissionClosed            = errors.New("lab submission already has a result")
	ErrLabNotAssigned                 = errors.New("no lab is assigned to this inspector")
	ErrLabSubmissionNotAssignedToUser = errors.New("lab submission belongs to another lab")
)

type (
	LabResultRequest struct {
		SubmissionStatus   string  `json:"submission_status" validate:"required,oneof=Approved Rejected"`
		QualityGrade       string  `json:"quality_grade" validate:"required,oneof=A B C"`
		CurcuminoidContent float64 `json:"curcuminoid_content" validate:"gte=0,lte=100"`
		MoistureContent    float64 `json:"moisture_content" validate:"gte=0,lte=100"`
		TestDate           string  `json:"test_date" validate:"required,datetime=2006-01-02"`
		InspectorNotes     string  `json:"inspector_notes"`
	}

	LabSubmissionResponse struct {
		ID                 string  `json:"id"`
		SubmissionStatus   string  `json:"submission_status"`
		SubmissionDate     string  `json:"submission_date,omitempty"`
		QualityGrade       string  `json:"quality_grade,omitempty"`
		CurcuminoidContent float64 `json:"curcuminoid_content,omitempty"`
		MoistureContent    float64 `json:"moisture_content,omitempty"`
		TestDate           string  `json:"test_date,omitempty"`
		InspectorNotes     string  `json:"inspector_notes,omitempty"`
		CertificateID      int     `json:"certificate_id,omitempty"`
		BatchID            string  `json:"batch_id,omitempty"`
		BatchCode          string  `json:"batch_code,omitempty"`
		LabID              string  `json:"lab_id,omitempty"`
		LabName            string  `json:"lab_name,omitempty"`
		YieldKg            float64 `json:"yield_kg,omitempty"`
	}

	InspectorDashboard struct {
		Total              int                     `json:"total"`
		Pending            int                     `json:"pending"`
		Approved           int                     `json:"approved"`
		Rejected           int                     `json:"rejected"`
		PassRate           float64                 `json:"pass_rate"`
		ByGrade            []chart.Point           `json:"by_grade"`
		MonthlyCurcuminoid []chart.Point           `json:"monthly_avg_curcuminoid"`
		Queue              []LabSubmissionResponse `json:"queue"`
	}
)
