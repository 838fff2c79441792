package domain

import (
	"errors"

	"turmeric-trace/pkg/chart"
)

var (
	MessageSuccessGetUsers           = "users retrieved successfully"
	MessageSuccessGetReference       = "records retrieved successfully"
	MessageSuccessCreateReference    = "record created successfully"
	MessageSuccessUpdateReference    = "record updated successfully"
	MessageSuccessDeleteReference    = "record deleted successfully"
	MessageSuccessCreateNotification = "notification created successfully"
	MessageSuccessGetAdminStats      = "admin dashboard retrieved successfully"
	MessageFailedGetUsers            = "failed to retrieve users"
	MessageFailedGetReference        = "failed to retrieve records"
	MessageFailedCreateReference     = "failed to create record"
	MessageFailedUpdateReference     = "failed to update record"
	MessageFailedDeleteReference     = "failed to delete record"
	MessageFailedCreateNotification  = "failed to create notification"
	MessageFailedGetAdminStats       = "failed to retrieve admin dashboard"
	ErrUnknownReferenceCollection    = errors.New("unknown reference collection")
	ErrNotificationTargetMissing     = errors.New("notification needs a target role or user")
)

type (
	UserResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		Role      string `json:"role"`
		Confirmed bool   `json:"confirmed"`
		Blocked   bool   `json:"blocked"`
	}

	CropTypeRequest struct {
		Name        string `json:"name" validate:"required"`
		Description string `json:"description"`
	}

	FactoryRequest struct {
		FactoryName   string `json:"factory_name" validate:"required"`
		Address       string `json:"address" validate:"required"`
		ContactNumber string `json:"contact_number"`
		User          string `json:"user"`
	}

	LabRequest struct {
		LabName       string `json:"lab_name" validate:"required"`
		Address       string `json:"address" validate:"required"`
		ContactNumber string `json:"contact_number"`
		User          string `json:"user"`
	}

	// ReferenceResponse is the flattened view shared by crop types, factories and labs.
	ReferenceResponse struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Description   string `json:"description,omitempty"`
		Address       string `json:"address,omitempty"`
		ContactNumber string `json:"contact_number,omitempty"`
		Owner         string `json:"owner,omitempty"`
	}

	NotificationRequest struct {
		Title      string `json:"title" validate:"required"`
		Message    string `json:"message" validate:"required"`
		Type       string `json:"type" validate:"omitempty,oneof=info warning success"`
		TargetRole string `json:"target_role" validate:"omitempty,oneof=farmer factory quality_inspector admin"`
		User       string `json:"user"`
		Link       string `json:"link"`
	}

	AdminDashboard struct {
		UserCount      int           `json:"user_count"`
		UsersByRole    []chart.Point `json:"users_by_role"`
		FarmCount      int           `json:"farm_count"`
		FactoryCount   int           `json:"factory_count"`
		LabCount       int           `json:"lab_count"`
		BatchesStatus  []chart.Point `json:"batches_by_status"`
		MonthlyBatches []chart.Point `json:"monthly_batches"`
	}
)
