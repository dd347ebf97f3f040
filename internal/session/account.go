package session

import (
	"context"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/wsargent/toodledo/internal/domain"
)

// GetServerInfo returns server time and the token expiry window. It does
// not require a key, which is what lets Connect call it while finishing a
// handshake.
func (s *Session) GetServerInfo(ctx context.Context) (*domain.ServerInfo, error) {
	body, err := s.call(ctx, "getServerInfo", nil, false)
	if err != nil {
		return nil, err
	}

	var payload struct {
		XMLName      xml.Name `xml:"server"`
		UnixTime     string   `xml:"unixtime"`
		TokenExpires string   `xml:"tokenexpires"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getServerInfo response: %v", domain.ErrServer, err)
	}

	info := &domain.ServerInfo{}
	if seconds, err := strconv.ParseInt(strings.TrimSpace(payload.UnixTime), 10, 64); err == nil {
		info.UnixTime = time.Unix(seconds, 0)
	}
	minutes, err := strconv.ParseFloat(strings.TrimSpace(payload.TokenExpires), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad tokenexpires %q", domain.ErrServer, payload.TokenExpires)
	}
	info.TokenExpiresMinutes = minutes

	return info, nil
}

// GetAccountInfo returns the account settings, including the hotlist
// thresholds the CLI uses.
func (s *Session) GetAccountInfo(ctx context.Context) (*domain.AccountInfo, error) {
	body, err := s.call(ctx, "getAccountInfo", nil, true)
	if err != nil {
		return nil, err
	}

	var payload struct {
		XMLName         xml.Name `xml:"account"`
		UserID          string   `xml:"userid"`
		Alias           string   `xml:"alias"`
		Pro             string   `xml:"pro"`
		DateFormat      string   `xml:"dateformat"`
		Timezone        string   `xml:"timezone"`
		HideMonths      string   `xml:"hidemonths"`
		HotlistPriority string   `xml:"hotlistpriority"`
		HotlistDueDate  string   `xml:"hotlistduedate"`
		LastAddEdit     string   `xml:"lastaddedit"`
		LastDelete      string   `xml:"lastdelete"`
	}
	if err := xml.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: parse getAccountInfo response: %v", domain.ErrServer, err)
	}

	return &domain.AccountInfo{
		UserID:          strings.TrimSpace(payload.UserID),
		Alias:           strings.TrimSpace(payload.Alias),
		Pro:             strings.TrimSpace(payload.Pro) == "1",
		DateFormat:      int(parseID(payload.DateFormat)),
		Timezone:        int(parseID(payload.Timezone)),
		HideMonths:      int(parseID(payload.HideMonths)),
		HotlistPriority: domain.Priority(parseID(payload.HotlistPriority)),
		HotlistDueDate:  int(parseID(payload.HotlistDueDate)),
		LastAddEdit:     parseDate(payload.LastAddEdit, domain.DateTimeFormat),
		LastDelete:      parseDate(payload.LastDelete, domain.DateTimeFormat),
	}, nil
}
