package service

import (
	"context"
	"strings"

	"melio/internal/api"
	"melio/internal/logger"
	"melio/internal/model"
)

const reportMinLength = 10

// ReportService submits incident reports. Validation happens client-side so
// an empty or too-short report never reaches the network.
type ReportService struct {
	client *api.Client
	auth   *AuthService
}

func NewReportService(client *api.Client, auth *AuthService) *ReportService {
	return &ReportService{client: client, auth: auth}
}

// Submit files a report. Anonymous reports carry no student id.
func (s *ReportService) Submit(ctx context.Context, content string, urgency model.Urgency, anonymous bool) (model.Report, error) {
	user := s.auth.CurrentUser()
	if user == nil {
		return model.Report{}, ErrNoSession
	}

	content = strings.TrimSpace(content)
	if len([]rune(content)) < reportMinLength {
		return model.Report{}, ErrReportTooShort
	}
	if !urgency.Valid() {
		urgency = model.UrgencyMedium
	}

	schoolID := s.auth.SchoolID()
	if schoolID == "" {
		return model.Report{}, ErrNoSchool
	}

	req := model.CreateReport{
		SchoolID:  schoolID,
		Content:   content,
		Urgency:   urgency,
		Anonymous: anonymous,
	}
	if !anonymous {
		req.StudentID = user.ID
	}

	report, err := s.client.CreateReport(ctx, req)
	if err != nil {
		logger.Warn("report.submit_failed", "uid", user.ID, "err", err)
		return model.Report{}, err
	}
	logger.Info("report.submitted", "report", report.ID, "urgency", urgency, "anonymous", anonymous)
	return report, nil
}
