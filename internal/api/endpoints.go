package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"melio/internal/model"
)

// StudentLogin authenticates with a school code and student identifier.
// It is the one unauthenticated call besides refresh.
func (c *Client) StudentLogin(ctx context.Context, schoolCode, studentIdentifier string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	req := model.LoginRequest{SchoolCode: schoolCode, StudentIdentifier: studentIdentifier}
	if err := c.once(ctx, "POST", "/auth/student/login", req, &resp, ""); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

// Refresh exchanges a refresh token outside the automatic 401 path, used by
// session restore on startup.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := c.once(ctx, "POST", "/auth/refresh", model.RefreshRequest{RefreshToken: refreshToken}, &resp, ""); err != nil {
		return model.AuthResponse{}, err
	}
	return resp, nil
}

func (c *Client) CreateEntry(ctx context.Context, studentID string, entry model.CreateJournalEntry) (model.JournalEntryWire, error) {
	var resp model.JournalEntryWire
	path := fmt.Sprintf("/students/%s/journal", url.PathEscape(studentID))
	if err := c.do(ctx, "POST", path, entry, &resp); err != nil {
		return model.JournalEntryWire{}, err
	}
	return resp, nil
}

func (c *Client) Entries(ctx context.Context, studentID string, limit, offset int) ([]model.JournalEntryWire, error) {
	var resp []model.JournalEntryWire
	path := fmt.Sprintf("/students/%s/journal%s", url.PathEscape(studentID), pageQuery(limit, offset))
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Entry(ctx context.Context, studentID, entryID string) (model.JournalEntryWire, error) {
	var resp model.JournalEntryWire
	path := fmt.Sprintf("/students/%s/journal/%s", url.PathEscape(studentID), url.PathEscape(entryID))
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return model.JournalEntryWire{}, err
	}
	return resp, nil
}

func (c *Client) UpdateEntry(ctx context.Context, studentID, entryID string, entry model.CreateJournalEntry) (model.JournalEntryWire, error) {
	var resp model.JournalEntryWire
	path := fmt.Sprintf("/students/%s/journal/%s", url.PathEscape(studentID), url.PathEscape(entryID))
	if err := c.do(ctx, "PATCH", path, entry, &resp); err != nil {
		return model.JournalEntryWire{}, err
	}
	return resp, nil
}

// SendMessage posts one user message; the backend atomically returns the
// persisted user message and the bot reply.
func (c *Client) SendMessage(ctx context.Context, studentID, content string) (model.ChatSendResponse, error) {
	var resp model.ChatSendResponse
	path := fmt.Sprintf("/students/%s/chat", url.PathEscape(studentID))
	if err := c.do(ctx, "POST", path, model.ChatSendRequest{Content: content}, &resp); err != nil {
		return model.ChatSendResponse{}, err
	}
	return resp, nil
}

func (c *Client) Messages(ctx context.Context, studentID string, limit, offset int) ([]model.ChatMessage, error) {
	var resp []model.ChatMessage
	path := fmt.Sprintf("/students/%s/chat%s", url.PathEscape(studentID), pageQuery(limit, offset))
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ChatStats(ctx context.Context, studentID string) (model.ChatStats, error) {
	var resp model.ChatStats
	path := fmt.Sprintf("/students/%s/chat/stats", url.PathEscape(studentID))
	if err := c.do(ctx, "GET", path, nil, &resp); err != nil {
		return model.ChatStats{}, err
	}
	return resp, nil
}

func (c *Client) DeleteAllMessages(ctx context.Context, studentID string) error {
	path := fmt.Sprintf("/students/%s/chat", url.PathEscape(studentID))
	return c.do(ctx, "DELETE", path, nil, nil)
}

func (c *Client) CreateReport(ctx context.Context, report model.CreateReport) (model.Report, error) {
	var resp model.Report
	if err := c.do(ctx, "POST", "/reports", report, &resp); err != nil {
		return model.Report{}, err
	}
	return resp, nil
}

func pageQuery(limit, offset int) string {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}
