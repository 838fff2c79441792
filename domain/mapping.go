package domain

import (
	"strconv"
	"strings"
	"time"

	"turmeric-trace/entities"
)

const DateLayout = "2006-01-02"

// Today is the date stamp used for submission dates.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// ToKg converts a yield amount to kilograms. Unknown units are taken as kg.
func ToKg(amount float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "ton", "tons", "tonne", "t":
		return amount * 1000
	case "g", "gram":
		return amount / 1000
	}
	return amount
}

// UserRef is the relation value for a users-permissions user, which is
// addressed by numeric id.
func UserRef(userID string) any {
	if n, err := strconv.Atoi(userID); err == nil {
		return n
	}
	return userID
}

func OwnedBy(u *entities.User, userID string) bool {
	return u != nil && strconv.Itoa(u.ID) == userID
}

func NewFarmResponse(f entities.Farm) FarmResponse {
	res := FarmResponse{
		ID:                f.Key(),
		FarmName:          f.FarmName,
		Location:          f.Location,
		AreaRai:           f.AreaRai,
		Latitude:          f.Latitude,
		Longitude:         f.Longitude,
		CultivationMethod: f.CultivationMethod,
		Certification:     f.Certification,
		BatchCount:        len(f.Batches),
	}
	if f.CropType != nil {
		res.CropType = f.CropType.Name
	}
	return res
}

func NewBatchResponse(b entities.Batch) BatchResponse {
	res := BatchResponse{
		ID:                  b.Key(),
		BatchCode:           b.BatchCode,
		BatchStatus:         b.BatchStatus,
		PlantVariety:        b.PlantVariety,
		PlantingDate:        b.PlantingDate,
		ExpectedHarvestDate: b.ExpectedHarvestDate,
		CultivationMethod:   b.CultivationMethod,
	}
	if b.Farm != nil {
		res.FarmID = b.Farm.Key()
		res.FarmName = b.Farm.FarmName
	}
	return res
}

func NewHarvestResponse(h entities.HarvestRecord) HarvestResponse {
	res := HarvestResponse{
		ID:            h.Key(),
		HarvestDate:   h.HarvestDate,
		YieldAmount:   h.YieldAmount,
		YieldUnit:     h.YieldUnit,
		YieldKg:       ToKg(h.YieldAmount, h.YieldUnit),
		QualityGrade:  h.QualityGrade,
		HarvestMethod: h.HarvestMethod,
	}
	if h.Batch != nil {
		res.BatchID = h.Batch.Key()
		res.BatchCode = h.Batch.BatchCode
	}
	return res
}

func NewLabSubmissionResponse(s entities.LabSubmission) LabSubmissionResponse {
	res := LabSubmissionResponse{
		ID:                 s.Key(),
		SubmissionStatus:   s.SubmissionStatus,
		SubmissionDate:     s.SubmissionDate,
		QualityGrade:       s.QualityGrade,
		CurcuminoidContent: s.CurcuminoidContent,
		MoistureContent:    s.MoistureContent,
		TestDate:           s.TestDate,
		InspectorNotes:     s.InspectorNotes,
	}
	if s.Certificate != nil {
		res.CertificateID = s.Certificate.ID
	}
	if s.Batch != nil {
		res.BatchID = s.Batch.Key()
		res.BatchCode = s.Batch.BatchCode
	}
	if s.Lab != nil {
		res.LabID = s.Lab.Key()
		res.LabName = s.Lab.LabName
	}
	if s.HarvestRecord != nil {
		res.YieldKg = ToKg(s.HarvestRecord.YieldAmount, s.HarvestRecord.YieldUnit)
	}
	return res
}

func NewFactorySubmissionResponse(s entities.FactorySubmission) FactorySubmissionResponse {
	res := FactorySubmissionResponse{
		ID:               s.Key(),
		SubmissionStatus: s.SubmissionStatus,
		SubmissionDate:   s.SubmissionDate,
		Quantity:         s.Quantity,
		Unit:             s.Unit,
		Notes:            s.Notes,
	}
	if s.Batch != nil {
		res.BatchID = s.Batch.Key()
		res.BatchCode = s.Batch.BatchCode
		if s.Batch.Farm != nil {
			res.FarmName = s.Batch.Farm.FarmName
		}
	}
	if s.LabSubmission != nil {
		res.QualityGrade = s.LabSubmission.QualityGrade
	}
	return res
}

func NewProcessingResponse(p entities.FactoryProcessing) ProcessingResponse {
	res := ProcessingResponse{
		ID:               p.Key(),
		ProductName:      p.ProductName,
		ProcessingMethod: p.ProcessingMethod,
		ProcessingDate:   p.ProcessingDate,
		OutputQuantity:   p.OutputQuantity,
		OutputUnit:       p.OutputUnit,
		LotNumber:        p.LotNumber,
		ProcessingStatus: p.ProcessingStatus,
		Operator:         p.Operator,
	}
	if p.FactorySubmission != nil {
		res.SubmissionID = p.FactorySubmission.Key()
		if p.FactorySubmission.Batch != nil {
			res.BatchCode = p.FactorySubmission.Batch.BatchCode
		}
	}
	return res
}

func NewExportResponse(e entities.ExportHistory) ExportResponse {
	res := ExportResponse{
		ID:           e.Key(),
		Destination:  e.Destination,
		Quantity:     e.Quantity,
		Unit:         e.Unit,
		ExportDate:   e.ExportDate,
		ExportStatus: e.ExportStatus,
	}
	if p := e.FactoryProcessing; p != nil {
		res.ProductName = p.ProductName
		res.LotNumber = p.LotNumber
		if p.FactorySubmission != nil && p.FactorySubmission.Batch != nil {
			res.BatchCode = p.FactorySubmission.Batch.BatchCode
		}
	}
	return res
}

func NewUserResponse(u entities.User) UserResponse {
	return UserResponse{
		ID:        strconv.Itoa(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		Role:      NormalizeRole(u.RoleName()),
		Confirmed: u.Confirmed,
		Blocked:   u.Blocked,
	}
}

func NewNotificationResponse(n entities.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.Key(),
		Title:     n.Title,
		Message:   n.Message,
		Type:      n.Type,
		Link:      n.Link,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}
