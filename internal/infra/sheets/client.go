// internal/infra/sheets/client.go
package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

var ErrWorksheetNotFound = fmt.Errorf("worksheet not found in spreadsheet")

// Client reads the current schedule and reads/overwrites the previous schedule, both
// worksheets of one spreadsheet. It implements schedule.Source and schedule.StateStore.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	currentSheet  string
	previousSheet string
	logger        *logrus.Entry
}

// NewClient authenticates with a service account key file and opens the spreadsheet.
// Empty sheet titles resolve to the first and second worksheet.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID, currentSheet, previousSheet string, logger *logrus.Entry) (*Client, error) {
	svc, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return NewClientFromService(ctx, svc, spreadsheetID, currentSheet, previousSheet, logger)
}

// NewClientFromService opens the spreadsheet with an already configured service.
func NewClientFromService(ctx context.Context, svc *gsheets.Service, spreadsheetID, currentSheet, previousSheet string, logger *logrus.Entry) (*Client, error) {
	ss, err := svc.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	titles := make([]string, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}

	c := &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger}
	if c.currentSheet, err = resolveTitle(titles, currentSheet, 0); err != nil {
		return nil, err
	}
	if c.previousSheet, err = resolveTitle(titles, previousSheet, 1); err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"current_sheet":  c.currentSheet,
		"previous_sheet": c.previousSheet,
	}).Info("Connected to Google sheets...")
	return c, nil
}

func resolveTitle(titles []string, want string, index int) (string, error) {
	if want == "" {
		if index >= len(titles) {
			return "", fmt.Errorf("%w: no worksheet at index %d", ErrWorksheetNotFound, index)
		}
		return titles[index], nil
	}
	for _, t := range titles {
		if t == want {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrWorksheetNotFound, want)
}

// quoteTitle renders a sheet title for A1 notation.
func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func (c *Client) readValues(ctx context.Context, title string) ([][]interface{}, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("error reading worksheet %q: %w", title, err)
	}
	return vr.Values, nil
}

// ReadCurrent returns the rows of the current schedule.
func (c *Client) ReadCurrent(ctx context.Context) ([]schedule.CustomerRecord, error) {
	values, err := c.readValues(ctx, c.currentSheet)
	if err != nil {
		return nil, err
	}
	records, err := decodeCurrent(values)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", c.currentSheet, err)
	}
	return records, nil
}

// ReadStates returns the rows of the previous schedule.
func (c *Client) ReadStates(ctx context.Context) ([]schedule.NotificationState, error) {
	values, err := c.readValues(ctx, c.previousSheet)
	if err != nil {
		return nil, err
	}
	states, err := decodeStates(values)
	if err != nil {
		return nil, fmt.Errorf("worksheet %q: %w", c.previousSheet, err)
	}
	return states, nil
}

// WriteStates overwrites the previous schedule with the header and rows, then clears
// anything left below them.
func (c *Client) WriteStates(ctx context.Context, rows []schedule.NotificationState) error {
	values := encodeStates(rows)
	sheet := quoteTitle(c.previousSheet)

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheet+"!A1", &gsheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error writing worksheet %q: %w", c.previousSheet, err)
	}

	stale := fmt.Sprintf("%s!A%d:C", sheet, len(values)+1)
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, stale, &gsheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("error clearing stale rows of worksheet %q: %w", c.previousSheet, err)
	}
	c.logger.WithField("rows", len(rows)).Debug("Previous schedule written")
	return nil
}
