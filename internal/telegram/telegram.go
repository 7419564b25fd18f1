package telegram

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"estates/server/internal/export"
	"estates/server/internal/finance"
	"estates/server/internal/models"
)

const defaultAPIURL = "https://api.telegram.org"

type Service struct {
	logger *logrus.Logger
	client *http.Client
	config *models.TelegramConfig
	apiURL string
}

func NewService(logger *logrus.Logger) *Service {
	return &Service{
		logger: logger,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: &models.TelegramConfig{},
		apiURL: defaultAPIURL,
	}
}

func (s *Service) UpdateConfig(config *models.TelegramConfig) {
	if config == nil {
		config = &models.TelegramConfig{}
	}
	s.config = config
}

// Enabled reports whether messages will actually be sent.
func (s *Service) Enabled() bool {
	return s.config.Configured()
}

// SendMessage sends a message to the configured Telegram chat
func (s *Service) SendMessage(message string) error {
	if !s.config.IsEnabled {
		return nil
	}

	if s.config.BotToken == "" {
		return errors.New("Telegram bot token is not configured")
	}

	if s.config.ChatID == "" {
		return errors.New("Telegram chat ID is not configured")
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.apiURL, s.config.BotToken)
	payload := map[string]interface{}{
		"chat_id":    s.config.ChatID,
		"text":       message,
		"parse_mode": "HTML",
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message payload: %w", err)
	}

	resp, err := s.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to send message to Telegram API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return errors.New("invalid bot token - please check your token from @BotFather")
		case http.StatusBadRequest:
			return fmt.Errorf("invalid chat ID or message format: %s", string(body))
		case http.StatusForbidden:
			return errors.New("bot was blocked by the user or chat")
		default:
			return fmt.Errorf("Telegram API error (status %d): %s", resp.StatusCode, string(body))
		}
	}

	return nil
}

// FormatBuildingMessage renders the summary sent when a building is added.
func FormatBuildingMessage(b models.Building, m finance.Metrics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🏢 <b>New building: %s</b>\n", html.EscapeString(b.Name))
	if b.Address != "" {
		fmt.Fprintf(&sb, "📍 %s\n", html.EscapeString(b.Address))
	}
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Acquisition: %s\n", export.FormatAmount(b.AcquisitionPrice))
	fmt.Fprintf(&sb, "Profit before interest: %s\n", export.FormatAmount(m.ProfitBeforeInterest))
	fmt.Fprintf(&sb, "Cash flow (%s rate, %s leverage): %s\n",
		export.PlainPercent(m.RatePct), export.PlainPercent(m.LeveragePct), export.FormatAmount(m.CashFlow))
	fmt.Fprintf(&sb, "Cash-on-cash: %s", export.FormatPercent(m.CashOnCash))
	return sb.String()
}

// NotifyNewBuilding sends a notification about a new building
func (s *Service) NotifyNewBuilding(b models.Building, m finance.Metrics) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.SendMessage(FormatBuildingMessage(b, m)); err != nil {
		return err
	}
	s.logger.WithField("building_id", b.ID).Info("Sent new building notification")
	return nil
}
