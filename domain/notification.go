package domain

import "errors"

var (
	MessageSuccessGetNotifications     = "notifications retrieved successfully"
	MessageSuccessDismissNotification  = "notification dismissed"
	MessageSuccessDismissNotifications = "notifications dismissed"
	MessageFailedGetNotifications      = "failed to retrieve notifications"
	MessageFailedDismissNotification   = "failed to dismiss notification"

	MessageSuccessDownloadAttachment = "attachment downloaded"
	MessageFailedDownloadAttachment  = "failed to download attachment"
)

type NotificationResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type,omitempty"`
	Link      string `json:"link,omitempty"`
	CreatedAt string `json:"created_at"`
}

var ErrAttachmentTooLarge = errors.New("attachment exceeds the download size limit")
