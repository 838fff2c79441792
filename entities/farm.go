package entities

type CropType struct {
	Record
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Farm struct {
	Record
	FarmName          string    `json:"farm_name"`
	Location          string    `json:"location"`
	AreaRai           float64   `json:"area_rai"`
	Latitude          float64   `json:"latitude,omitempty"`
	Longitude         float64   `json:"longitude,omitempty"`
	CultivationMethod string    `json:"cultivation_method,omitempty"`
	Certification     string    `json:"certification,omitempty"`
	CropType          *CropType `json:"crop_type,omitempty"`
	User              *User     `json:"user,omitempty"`
	Batches           []Batch   `json:"batches,omitempty"`
}

type Batch struct {
	Record
	BatchCode           string          `json:"batch_id"`
	BatchStatus         string          `json:"batch_status"`
	PlantVariety        string          `json:"plant_variety"`
	PlantingDate        string          `json:"planting_date"`
	ExpectedHarvestDate string          `json:"expected_harvest_date,omitempty"`
	CultivationMethod   string          `json:"cultivation_method,omitempty"`
	Farm                *Farm           `json:"farm,omitempty"`
	HarvestRecords      []HarvestRecord `json:"harvest_records,omitempty"`
}

type HarvestRecord struct {
	Record
	HarvestDate   string  `json:"harvest_date"`
	YieldAmount   float64 `json:"yield_amount"`
	YieldUnit     string  `json:"yield_unit"`
	QualityGrade  string  `json:"quality_grade,omitempty"`
	HarvestMethod string  `json:"harvest_method,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Batch         *Batch  `json:"batch,omitempty"`
}
