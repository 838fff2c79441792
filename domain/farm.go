package domain

import (
	"errors"

	"turmeric-trace/pkg/chart"
)

const (
	BatchStatusPlanted          = "Planted"
	BatchStatusHarvested        = "Harvested"
	BatchStatusSubmittedLab     = "Submitted to Lab"
	BatchStatusSubmittedFactory = "Submitted to Factory"
)

var (
	MessageSuccessGetFarms       = "farms retrieved successfully"
	MessageSuccessCreateFarm     = "farm created successfully"
	MessageSuccessUpdateFarm     = "farm updated successfully"
	MessageSuccessDeleteFarm     = "farm deleted successfully"
	MessageSuccessGetBatches     = "batches retrieved successfully"
	MessageSuccessCreateBatch    = "batch created successfully"
	MessageSuccessUpdateBatch    = "batch updated successfully"
	MessageSuccessDeleteBatch    = "batch deleted successfully"
	MessageSuccessGetHarvests    = "harvest records retrieved successfully"
	MessageSuccessCreateHarvest  = "harvest record created successfully"
	MessageSuccessSubmitLab      = "batch submitted to lab successfully"
	MessageSuccessSubmitFactory  = "batch submitted to factory successfully"
	MessageSuccessGetFarmerStats = "farmer dashboard retrieved successfully"
	MessageSuccessGetCropTypes   = "crop types retrieved successfully"

	MessageFailedGetFarms       = "failed to retrieve farms"
	MessageFailedCreateFarm     = "failed to create farm"
	MessageFailedUpdateFarm     = "failed to update farm"
	MessageFailedDeleteFarm     = "failed to delete farm"
	MessageFailedGetBatches     = "failed to retrieve batches"
	MessageFailedCreateBatch    = "failed to create batch"
	MessageFailedUpdateBatch    = "failed to update batch"
	MessageFailedDeleteBatch    = "failed to delete batch"
	MessageFailedGetHarvests    = "failed to retrieve harvest records"
	MessageFailedCreateHarvest  = "failed to create harvest record"
	MessageFailedSubmitLab      = "failed to submit batch to lab"
	MessageFailedSubmitFactory  = "failed to submit batch to factory"
	MessageFailedGetFarmerStats = "failed to retrieve farmer dashboard"
	MessageFailedGetCropTypes   = "failed to retrieve crop types"

	ErrFarmNotFound          = errors.New("farm not found")
	ErrBatchNotFound         = errors.New("batch not found")
	ErrBatchNotHarvested     = errors.New("batch has no harvest record yet")
	ErrBatchNotApproved      = errors.New("batch has no approved lab result")
	ErrBatchAlreadySubmitted = errors.New("batch already has an open submission")
)

type (
	FarmRequest struct {
		FarmName          string  `json:"farm_name" validate:"required"`
		Location          string  `json:"location" validate:"required"`
		AreaRai           float64 `json:"area_rai" validate:"gte=0"`
		Latitude          float64 `json:"latitude" validate:"gte=-90,lte=90"`
		Longitude         float64 `json:"longitude" validate:"gte=-180,lte=180"`
		CultivationMethod string  `json:"cultivation_method" validate:"omitempty,oneof=Organic Conventional GAP"`
		Certification     string  `json:"certification"`
		CropType          string  `json:"crop_type"`
	}

	FarmResponse struct {
		ID                string  `json:"id"`
		FarmName          string  `json:"farm_name"`
		Location          string  `json:"location"`
		AreaRai           float64 `json:"area_rai"`
		Latitude          float64 `json:"latitude,omitempty"`
		Longitude         float64 `json:"longitude,omitempty"`
		CultivationMethod string  `json:"cultivation_method,omitempty"`
		Certification     string  `json:"certification,omitempty"`
		CropType          string  `json:"crop_type,omitempty"`
		BatchCount        int     `json:"batch_count"`
	}

	BatchRequest struct {
		Farm                string `json:"farm" validate:"required"`
		BatchCode           string `json:"batch_id"`
		PlantVariety        string `json:"plant_variety" validate:"required"`
		PlantingDate        string `json:"planting_date" validate:"required,datetime=2006-01-02"`
		ExpectedHarvestDate string `json:"expected_harvest_date" validate:"omitempty,datetime=2006-01-02"`
		CultivationMethod   string `json:"cultivation_method"`
		BatchStatus         string `json:"batch_status"`
	}

	BatchResponse struct {
		ID                  string `json:"id"`
		BatchCode           string `json:"batch_id"`
		BatchStatus         string `json:"batch_status"`
		PlantVariety        string `json:"plant_variety"`
		PlantingDate        string `json:"planting_date"`
		ExpectedHarvestDate string `json:"expected_harvest_date,omitempty"`
		CultivationMethod   string `json:"cultivation_method,omitempty"`
		FarmID              string `json:"farm_id,omitempty"`
		FarmName            string `json:"farm_name,omitempty"`
	}

	HarvestRequest struct {
		Batch         string  `json:"batch" validate:"required"`
		HarvestDate   string  `json:"harvest_date" validate:"required,datetime=2006-01-02"`
		YieldAmount   float64 `json:"yield_amount" validate:"required,gt=0"`
		YieldUnit     string  `json:"yield_unit" validate:"required,oneof=kg ton"`
		QualityGrade  string  `json:"quality_grade" validate:"omitempty,oneof=A B C"`
		HarvestMethod string  `json:"harvest_method"`
		Notes         string  `json:"notes"`
	}

	HarvestResponse struct {
		ID            string  `json:"id"`
		HarvestDate   string  `json:"harvest_date"`
		YieldAmount   float64 `json:"yield_amount"`
		YieldUnit     string  `json:"yield_unit"`
		YieldKg       float64 `json:"yield_kg"`
		QualityGrade  string  `json:"quality_grade,omitempty"`
		HarvestMethod string  `json:"harvest_method,omitempty"`
		BatchID       string  `json:"batch_id,omitempty"`
		BatchCode     string  `json:"batch_code,omitempty"`
	}

	LabSubmitRequest struct {
		Batch         string `json:"batch" validate:"required"`
		HarvestRecord string `json:"harvest_record" validate:"required"`
		Lab           string `json:"lab" validate:"required"`
	}

	FactorySubmitRequest struct {
		Batch    string  `json:"batch" validate:"required"`
		Factory  string  `json:"factory" validate:"required"`
		Quantity float64 `json:"quantity" validate:"required,gt=0"`
		Unit     string  `json:"unit" validate:"required,oneof=kg ton"`
		Notes    string  `json:"notes"`
	}

	FarmerDashboard struct {
		FarmCount      int               `json:"farm_count"`
		BatchCount     int               `json:"batch_count"`
		TotalYieldKg   float64           `json:"total_yield_kg"`
		BatchesStatus  []chart.Point     `json:"batches_by_status"`
		MonthlyYieldKg []chart.Point     `json:"monthly_yield_kg"`
		YieldByFarmKg  []chart.Point     `json:"yield_by_farm_kg"`
		RecentHarvests []HarvestResponse `json:"recent_harvests"`
	}
)
