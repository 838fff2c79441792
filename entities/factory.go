package entities

type Factory struct {
	Record
	FactoryName   string `json:"factory_name"`
	Address       string `json:"address,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	User          *User  `json:"user,omitempty"`
}

type FactorySubmission struct {
	Record
	SubmissionStatus string         `json:"submission_status"`
	SubmissionDate   string         `json:"submission_date,omitempty"`
	Quantity         float64        `json:"quantity"`
	Unit             string         `json:"unit,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Batch            *Batch         `json:"batch,omitempty"`
	Factory          *Factory       `json:"factory,omitempty"`
	LabSubmission    *LabSubmission `json:"lab_submission_record,omitempty"`
}

type FactoryProcessing struct {
	Record
	ProductName       string             `json:"product_name"`
	ProcessingMethod  string             `json:"processing_method"`
	ProcessingDate    string             `json:"processing_date"`
	OutputQuantity    float64            `json:"output_quantity"`
	OutputUnit        string             `json:"output_unit"`
	LotNumber         string             `json:"lot_number,omitempty"`
	ProcessingStatus  string             `json:"processing_status"`
	Operator          string             `json:"operator,omitempty"`
	FactorySubmission *FactorySubmission `json:"factory_submission,omitempty"`
	Factory           *Factory           `json:"factory,omitempty"`
}

type ExportHistory struct {
	Record
	Destination       string             `json:"destination"`
	Quantity          float64            `json:"quantity"`
	Unit              string             `json:"unit,omitempty"`
	ExportDate        string             `json:"export_date"`
	ExportStatus      string             `json:"export_status"`
	FactoryProcessing *FactoryProcessing `json:"factory_processing,omitempty"`
	Factory           *Factory           `json:"factory,omitempty"`
}
