package domain

import "errors"

var (
	MessageSuccessGetCatalog = "catalog retrieved successfully"
	MessageSuccessGetTrace   = "trace retrieved successfully"
	MessageFailedGetCatalog  = "failed to retrieve catalog"
	MessageFailedGetTrace    = "failed to retrieve trace"
	MessageFailedGenerateQR  = "failed to generate QR code"

	ErrTraceNotFound = errors.New("no batch matches this trace code")
)

type (
	CatalogItem struct {
		ID               string  `json:"id"`
		ProductName      string  `json:"product_name"`
		LotNumber        string  `json:"lot_number,omitempty"`
		ProcessingMethod string  `json:"processing_method"`
		ProcessingDate   string  `json:"processing_date"`
		OutputQuantity   float64 `json:"output_quantity"`
		OutputUnit       string  `json:"output_unit"`
		FactoryName      string  `json:"factory_name,omitempty"`
		BatchCode        string  `json:"batch_code,omitempty"`
		TraceURL         string  `json:"trace_url,omitempty"`
	}

	TraceFarm struct {
		FarmName          string  `json:"farm_name"`
		Location          string  `json:"location"`
		AreaRai           float64 `json:"area_rai,omitempty"`
		CultivationMethod string  `json:"cultivation_method,omitempty"`
		Certification     string  `json:"certification,omitempty"`
	}

	TraceEvent struct {
		Stage  string `json:"stage"`
		Date   string `json:"date"`
		Title  string `json:"title"`
		Detail string `json:"detail,omitempty"`
	}

	TraceResponse struct {
		BatchCode    string                      `json:"batch_code"`
		PlantVariety string                      `json:"plant_variety"`
		BatchStatus  string                      `json:"batch_status"`
		PlantingDate string                      `json:"planting_date"`
		Farm         *TraceFarm                  `json:"farm,omitempty"`
		Harvests     []HarvestResponse           `json:"harvests"`
		LabResults   []LabSubmissionResponse     `json:"lab_results"`
		Submissions  []FactorySubmissionResponse `json:"factory_submissions"`
		Products     []ProcessingResponse        `json:"products"`
		Timeline     []TraceEvent                `json:"timeline"`
		TraceURL     string                      `json:"trace_url"`
	}
)
