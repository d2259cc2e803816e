package collector

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// collectedEmail is the corpus record written for each received message.
// The field set matches the flat email shape the dataset loader accepts.
type collectedEmail struct {
	ID        string   `json:"id"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	From      string   `json:"from"`
	To        []string `json:"to"`
	Timestamp string   `json:"timestamp"`
}

// SMTPCollector receives emails over SMTP and appends them to a JSON corpus file
type SMTPCollector struct {
	logger     *zap.Logger
	listenAddr string
	outputPath string
	maxBytes   int64
	server     *smtp.Server
	mu         sync.Mutex
}

// NewSMTPCollector creates a new SMTP corpus collector
func NewSMTPCollector(listenAddr, outputPath string, maxBytes int64, logger *zap.Logger) *SMTPCollector {
	return &SMTPCollector{
		logger:     logger,
		listenAddr: listenAddr,
		outputPath: outputPath,
		maxBytes:   maxBytes,
	}
}

// Start starts the SMTP server
func (c *SMTPCollector) Start() error {
	c.server = smtp.NewServer(&collectorBackend{collector: c})

	c.server.Addr = c.listenAddr
	c.server.Domain = "localhost"
	c.server.ReadTimeout = 30 * time.Second
	c.server.WriteTimeout = 30 * time.Second
	c.server.MaxMessageBytes = c.maxBytes
	c.server.MaxRecipients = 50
	c.server.AllowInsecureAuth = true

	c.logger.Info("Corpus collector starting",
		zap.String("address", c.listenAddr),
		zap.String("output", c.outputPath))

	go func() {
		if err := c.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				c.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (c *SMTPCollector) Stop() error {
	if c.server != nil {
		return c.server.Close()
	}
	return nil
}

// appendRecord adds an email record to the corpus file, creating it if needed
func (c *SMTPCollector) appendRecord(record collectedEmail) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var records []collectedEmail
	data, err := os.ReadFile(c.outputPath)
	if err == nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &records); err != nil {
			return fmt.Errorf("corpus file is not a valid email list: %w", err)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read corpus file: %w", err)
	}

	records = append(records, record)

	out, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal corpus records: %w", err)
	}

	if err := os.WriteFile(c.outputPath, out, 0644); err != nil {
		return fmt.Errorf("failed to write corpus file: %w", err)
	}

	return nil
}

// collectorBackend implements the go-smtp Backend interface
type collectorBackend struct {
	collector *SMTPCollector
}

// NewSession creates a new SMTP session
func (b *collectorBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &collectorSession{
		collector:  b.collector,
		recipients: make([]string, 0),
	}, nil
}

// collectorSession implements the go-smtp Session interface
type collectorSession struct {
	collector  *SMTPCollector
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *collectorSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for the collector)
func (s *collectorSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *collectorSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *collectorSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Data reads the message and appends it to the corpus file
func (s *collectorSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.collector.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.collector.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.collector.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	subject := msg.Header.Get("Subject")
	if decoded, err := decodeEncodedHeader(subject); err == nil {
		subject = decoded
	}

	timestamp := time.Now()
	if date, err := msg.Header.Date(); err == nil {
		timestamp = date
	}

	record := collectedEmail{
		ID:        uuid.NewString(),
		Subject:   subject,
		Body:      strings.TrimRight(textContent, "\n"),
		From:      s.sender,
		To:        s.recipients,
		Timestamp: timestamp.Format("2006-01-02T15:04:05"),
	}

	if err := s.collector.appendRecord(record); err != nil {
		s.collector.logger.Error("Failed to store collected email",
			zap.Error(err),
			zap.String("from", s.sender))
		return err
	}

	s.collector.logger.Info("Collected email",
		zap.String("from", s.sender),
		zap.Int("recipients", len(s.recipients)),
		zap.String("subject", subject))

	return nil
}

// Logout handles SMTP logout
func (s *collectorSession) Logout() error {
	return nil
}
