package entities

type Lab struct {
	Record
	LabName       string `json:"lab_name"`
	Address       string `json:"address,omitempty"`
	ContactNumber string `json:"contact_number,omitempty"`
	User          *User  `json:"user,omitempty"`
}

type LabSubmission struct {
	Record
	SubmissionStatus   string         `json:"submission_status"`
	SubmissionDate     string         `json:"submission_date,omitempty"`
	QualityGrade       string         `json:"quality_grade,omitempty"`
	CurcuminoidContent float64        `json:"curcuminoid_content,omitempty"`
	MoistureContent    float64        `json:"moisture_content,omitempty"`
	TestDate           string         `json:"test_date,omitempty"`
	InspectorNotes     string         `json:"inspector_notes,omitempty"`
	Certificate        *UploadFile    `json:"certificate,omitempty"`
	Batch              *Batch         `json:"batch,omitempty"`
	HarvestRecord      *HarvestRecord `json:"harvest_record,omitempty"`
	Lab                *Lab           `json:"lab,omitempty"`
}
