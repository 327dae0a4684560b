package services

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"

	"github.com/openmelody/backend/internal/config"
	"github.com/openmelody/backend/pkg/logger"
)

// PlaylistExport is the assembled playlist snapshot an export message
// carries to the recipient, both human-readable and as an attachment.
type PlaylistExport struct {
	ID    string        `json:"id"`
	Name  string        `json:"name"`
	Songs []SongSummary `json:"songs"`
}

// Mailer delivers a playlist export to a recipient.
type Mailer interface {
	SendPlaylistExport(to string, export *PlaylistExport) error
}

type SMTPMailer struct {
	cfg *config.SMTPConfig
}

func NewSMTPMailer(cfg *config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// ExportSubject builds the email subject, identifying the playlist by name.
func ExportSubject(export *PlaylistExport) string {
	return fmt.Sprintf("Playlist Export: %s", export.Name)
}

// BuildExportBody renders the playlist's song list as HTML.
func BuildExportBody(export *PlaylistExport) string {
	var sb strings.Builder

	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<h2>Playlist Export: %s</h2>", export.Name))
	sb.WriteString(fmt.Sprintf("<p>Your playlist contains %d song(s). The full data is attached as JSON.</p>", len(export.Songs)))

	sb.WriteString("<table style=\"border-collapse: collapse;\">")
	sb.WriteString("<tr><th style=\"padding: 8px; border: 1px solid #ddd;\">Title</th><th style=\"padding: 8px; border: 1px solid #ddd;\">Performer</th></tr>")
	for _, song := range export.Songs {
		sb.WriteString(fmt.Sprintf("<tr><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td><td style=\"padding: 8px; border: 1px solid #ddd;\">%s</td></tr>", song.Title, song.Performer))
	}
	sb.WriteString("</table>")

	sb.WriteString("<hr><p style=\"color: #888; font-size: 12px;\">Powered by OpenMelody</p>")
	sb.WriteString("</body></html>")

	return sb.String()
}

// BuildExportAttachment marshals the export for the machine-readable
// attachment, named after the playlist id.
func BuildExportAttachment(export *PlaylistExport) (filename string, content []byte, err error) {
	payload := map[string]*PlaylistExport{"playlist": export}
	content, err = json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", nil, err
	}
	return export.ID + ".json", content, nil
}

// SendPlaylistExport renders and delivers the export email with its JSON
// attachment.
func (m *SMTPMailer) SendPlaylistExport(to string, export *PlaylistExport) error {
	filename, attachment, err := BuildExportAttachment(export)
	if err != nil {
		return err
	}

	message, err := buildMIMEMessage(m.from(), to, ExportSubject(export), BuildExportBody(export), filename, attachment)
	if err != nil {
		return err
	}

	if err := m.send(to, message); err != nil {
		logger.Errorf("[Mailer] Failed to send export to %s: %v", to, err)
		return err
	}

	logger.Infof("[Mailer] Export for playlist %s sent to %s", export.ID, to)
	return nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.From != "" {
		return m.cfg.From
	}
	return m.cfg.Username
}

// buildMIMEMessage assembles a multipart/mixed message: HTML body plus one
// attachment.
func buildMIMEMessage(from, to, subject, htmlBody, filename string, attachment []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: multipart/mixed; boundary=" + writer.Boundary(),
	}
	head := strings.Join(headers, "\r\n") + "\r\n\r\n"

	bodyHeader := textproto.MIMEHeader{}
	bodyHeader.Set("Content-Type", "text/html; charset=UTF-8")
	bodyPart, err := writer.CreatePart(bodyHeader)
	if err != nil {
		return nil, err
	}
	if _, err := bodyPart.Write([]byte(htmlBody)); err != nil {
		return nil, err
	}

	attachHeader := textproto.MIMEHeader{}
	attachHeader.Set("Content-Type", "application/json")
	attachHeader.Set("Content-Transfer-Encoding", "base64")
	attachHeader.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	attachPart, err := writer.CreatePart(attachHeader)
	if err != nil {
		return nil, err
	}
	if _, err := attachPart.Write(wrapBase64(attachment)); err != nil {
		return nil, err
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	return append([]byte(head), buf.Bytes()...), nil
}

// wrapBase64 encodes data and folds it into 76-character lines as RFC 2045
// requires for base64 transfer encoding.
func wrapBase64(data []byte) []byte {
	encoded := base64.StdEncoding.EncodeToString(data)

	var buf bytes.Buffer
	for len(encoded) > 76 {
		buf.WriteString(encoded[:76])
		buf.WriteString("\r\n")
		encoded = encoded[76:]
	}
	buf.WriteString(encoded)
	return buf.Bytes()
}

func (m *SMTPMailer) send(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	var auth smtp.Auth
	if m.cfg.Username != "" && m.cfg.Password != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}

	if m.cfg.UseTLS {
		return m.sendTLS(addr, auth, to, message)
	}
	return smtp.SendMail(addr, auth, m.from(), []string{to}, message)
}

func (m *SMTPMailer) sendTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	tlsConfig := &tls.Config{
		ServerName: m.cfg.Host,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}

	if err := client.Mail(m.from()); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(message); err != nil {
		return err
	}
	return w.Close()
}
