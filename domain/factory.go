package domain

import (
	"errors"

	"turmeric-trace/pkg/chart"
)

const (
	FactoryStatusWaiting   = "Waiting"
	FactoryStatusReceived  = "Received"
	FactoryStatusRejected  = "Rejected"
	FactoryStatusProcessed = "Processed"

	ProcessingStatusInProgress = "Processing"
	ProcessingStatusCompleted  = "Completed"

	ExportStatusShipped = "Shipped"
)

var (
	MessageSuccessGetFactorySubmissions = "factory submissions retrieved successfully"
	MessageSuccessDecideSubmission      = "factory submission updated successfully"
	MessageSuccessGetProcessings        = "processing records retrieved successfully"
	MessageSuccessCreateProcessing      = "processing record created successfully"
	MessageSuccessUpdateProcessing      = "processing record updated successfully"
	MessageSuccessDeleteProcessing      = "processing record deleted successfully"
	MessageSuccessExport                = "export recorded successfully"
	MessageSuccessGetExports            = "export history retrieved successfully"
	MessageSuccessPublishQR             = "QR code published successfully"
	MessageSuccessShareTrace            = "trace link sent successfully"
	MessageSuccessGetFactoryStats       = "factory dashboard retrieved successfully"
	MessageSuccessGetFactories          = "factories retrieved successfully"

	MessageFailedGetFactorySubmissions = "failed to retrieve factory submissions"
	MessageFailedDecideSubmission      = "failed to update factory submission"
	MessageFailedGetProcessings        = "failed to retrieve processing records"
	MessageFailedCreateProcessing      = "failed to create processing record"
	MessageFailedUpdateProcessing      = "failed to update processing record"
	MessageFailedDeleteProcessing      = "failed to delete processing record"
	MessageFailedExport                = "failed to record export"
	MessageFailedGetExports            = "failed to retrieve export history"
	MessageFailedPublishQR             = "failed to publish QR code"
	MessageFailedShareTrace            = "failed to send trace link"
	MessageFailedGetFactoryStats       = "failed to retrieve factory dashboard"
	MessageFailedGetFactories          = "failed to retrieve factories"

	ErrFactoryNotAssigned         = errors.New("no factory is assigned to this account")
	ErrFactorySubmissionNotFound  = errors.New("factory submission not found")
	ErrSubmissionNotReceived      = errors.New("submission must be received before processing")
	ErrSubmissionAlreadyDecided   = errors.New("submission has already been decided")
	ErrProcessingNotFound         = errors.New("processing record not found")
	ErrProcessingNotCompleted     = errors.New("processing must be completed before export")
	ErrExportExceedsOutput        = errors.New("export quantity exceeds remaining output")
	ErrProcessingWithoutBatchCode = errors.New("processing record is not linked to a batch")
)

type (
	SubmissionDecisionRequest struct {
		SubmissionStatus string `json:"submission_status" validate:"required,oneof=Received Rejected"`
		Notes            string `json:"notes"`
	}

	FactorySubmissionResponse struct {
		ID               string  `json:"id"`
		SubmissionStatus string  `json:"submission_status"`
		SubmissionDate   string  `json:"submission_date,omitempty"`
		Quantity         float64 `json:"quantity"`
		Unit             string  `json:"unit,omitempty"`
		Notes            string  `json:"notes,omitempty"`
		BatchID          string  `json:"batch_id,omitempty"`
		BatchCode        string  `json:"batch_code,omitempty"`
		FarmName         string  `json:"farm_name,omitempty"`
		QualityGrade     string  `json:"quality_grade,omitempty"`
	}

	ProcessingRequest struct {
		FactorySubmission string  `json:"factory_submission" validate:"required"`
		ProductName       string  `json:"product_name" validate:"required"`
		ProcessingMethod  string  `json:"processing_method" validate:"required"`
		ProcessingDate    string  `json:"processing_date" validate:"required,datetime=2006-01-02"`
		OutputQuantity    float64 `json:"output_quantity" validate:"required,gt=0"`
		OutputUnit        string  `json:"output_unit" validate:"required"`
		LotNumber         string  `json:"lot_number"`
		ProcessingStatus  string  `json:"processing_status" validate:"omitempty,oneof=Processing Completed"`
		Operator          string  `json:"operator"`
	}

	ProcessingResponse struct {
		ID               string  `json:"id"`
		ProductName      string  `json:"product_name"`
		ProcessingMethod string  `json:"processing_method"`
		ProcessingDate   string  `json:"processing_date"`
		OutputQuantity   float64 `json:"output_quantity"`
		OutputUnit       string  `json:"output_unit"`
		LotNumber        string  `json:"lot_number,omitempty"`
		ProcessingStatus string  `json:"processing_status"`
		Operator         string  `json:"operator,omitempty"`
		SubmissionID     string  `json:"factory_submission_id,omitempty"`
		BatchCode        string  `json:"batch_code,omitempty"`
	}

	ExportRequest struct {
		Destination string  `json:"destination" validate:"required"`
		Quantity    float64 `json:"quantity" validate:"required,gt=0"`
		ExportDate  string  `json:"export_date" validate:"required,datetime=2006-01-02"`
	}

	ExportResponse struct {
		ID           string  `json:"id"`
		Destination  string  `json:"destination"`
		Quantity     float64 `json:"quantity"`
		Unit         string  `json:"unit,omitempty"`
		ExportDate   string  `json:"export_date"`
		ExportStatus string  `json:"export_status"`
		ProductName  string  `json:"product_name,omitempty"`
		LotNumber    string  `json:"lot_number,omitempty"`
		BatchCode    string  `json:"batch_code,omitempty"`
	}

	ShareTraceRequest struct {
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"max=500"`
	}

	QRPublishResponse struct {
		BatchCode string `json:"batch_code"`
		TraceURL  string `json:"trace_url"`
		ImageURL  string `json:"image_url"`
	}

	FactoryDashboard struct {
		SubmissionCount   int                         `json:"submission_count"`
		WaitingCount      int                         `json:"waiting_count"`
		ProcessingCount   int                         `json:"processing_count"`
		CompletedCount    int                         `json:"completed_count"`
		TotalOutput       float64                     `json:"total_output"`
		SubmissionsStatus []chart.Point               `json:"submissions_by_status"`
		MonthlyOutput     []chart.Point               `json:"monthly_output"`
		OutputByProduct   []chart.Point               `json:"output_by_product"`
		RecentSubmissions []FactorySubmissionResponse `json:"recent_submissions"`
	}
)
