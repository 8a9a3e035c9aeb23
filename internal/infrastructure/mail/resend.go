// Package mail implementa o envio de e-mail transacional via API HTTP do Resend.
package mail

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alpsistemas/oficina-api/internal/application/auth"
	"github.com/alpsistemas/oficina-api/internal/application/usecase"
	"github.com/alpsistemas/oficina-api/pkg/config"
	"github.com/alpsistemas/oficina-api/pkg/logger"
)

// Verificação em tempo de compilação dos portos implementados.
var (
	_ auth.Mailer    = (*ResendMailer)(nil)
	_ usecase.Mailer = (*ResendMailer)(nil)
)

const resendEndpoint = "https://api.resend.com/emails"

// ErrNotConfigured indica que RESEND_API_KEY ou EMAIL_FROM não foram definidos.
// Quem trata e-mail como melhor esforço registra em log e segue; o formulário
// de contato propaga, porque ali o envio é a própria operação.
var ErrNotConfigured = errors.New("mail: RESEND_API_KEY ou EMAIL_FROM não configurados")

// ResendMailer adaptador que atende auth.Mailer e usecase.Mailer usando a
// API REST do Resend. Usa net/http da biblioteca padrão; não requer SDK.
type ResendMailer struct {
	cfg        config.MailConfig
	httpClient *http.Client
	log        *logger.Logger
}

// NewResendMailer constrói o adaptador. Com APIKey ou From vazios o envio
// fica desabilitado: cada tentativa é registrada e devolve ErrNotConfigured.
func NewResendMailer(cfg config.MailConfig, log *logger.Logger) *ResendMailer {
	return &ResendMailer{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		log: log,
	}
}

// ── Estruturas do protocolo Resend ───────────────────────────────────────────

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// resendErrorBody corpo de erro do Resend: {name, message} ou {error}.
type resendErrorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (b resendErrorBody) detail() string {
	msg := b.Message
	if msg == "" {
		msg = b.Err
	}
	if b.Name != "" && msg != "" {
		return b.Name + ": " + msg
	}
	return msg
}

// ── Implementação dos portos ─────────────────────────────────────────────────

// SendSignupPending boas-vindas ao gerente recém cadastrado.
func (m *ResendMailer) SendSignupPending(to, userName, companyName string) error {
	return m.send(to, "Cadastro recebido - ALP Oficinas", signupPendingHTML(userName, companyName), "")
}

// SendSignupNotice aviso de novo cadastro para o e-mail da plataforma.
func (m *ResendMailer) SendSignupNotice(companyName, taxID, plan, period string) error {
	to, err := m.contactAddress()
	if err != nil {
		return err
	}
	return m.send(to, "Nova oficina cadastrada - "+companyName, signupNoticeHTML(companyName, taxID, plan, period), "")
}

// SendPasswordReset envia o token de redefinição de senha com a validade.
func (m *ResendMailer) SendPasswordReset(to, userName, token string, ttl time.Duration) error {
	return m.send(to, "Recuperação de senha - ALP Oficinas", passwordResetHTML(userName, token, ttl), "")
}

// SendAccountApproved avisa um gerente que o pagamento foi confirmado.
func (m *ResendMailer) SendAccountApproved(to, userName, companyName string, expiresAt time.Time) error {
	return m.send(to, "Acesso liberado - ALP Oficinas", accountApprovedHTML(userName, companyName, expiresAt), "")
}

// SendUserCredentials envia login e senha inicial de um usuário novo.
func (m *ResendMailer) SendUserCredentials(to, userName, username, password, companyName string) error {
	return m.send(to, "Seu acesso - "+companyName, userCredentialsHTML(userName, username, password, companyName), "")
}

// SendRenewalRequested aviso de pedido de renovação para a plataforma.
func (m *ResendMailer) SendRenewalRequested(companyName, period string) error {
	to, err := m.contactAddress()
	if err != nil {
		return err
	}
	return m.send(to, "Renovação solicitada - "+companyName, renewalRequestedHTML(companyName, period), "")
}

// SendRenewalApplied confirma a renovação aplicada para um gerente.
func (m *ResendMailer) SendRenewalApplied(to, userName, companyName string, expiresAt time.Time) error {
	return m.send(to, "Renovação confirmada - ALP Oficinas", renewalAppliedHTML(userName, companyName, expiresAt), "")
}

// SendContactForm entrega o formulário de contato ao e-mail da plataforma,
// com reply_to apontando para quem escreveu.
func (m *ResendMailer) SendContactForm(name, email, phone, message string) error {
	to, err := m.contactAddress()
	if err != nil {
		return err
	}
	return m.send(to, "Contato pelo site - ALP Oficinas", contactFormHTML(name, email, phone, message), email)
}

// ── Envio ────────────────────────────────────────────────────────────────────

func (m *ResendMailer) contactAddress() (string, error) {
	if m.cfg.ContactEmail == "" {
		m.log.Warn().Msg("mail: CONTACT_EMAIL não configurado, aviso descartado")
		return "", errors.New("mail: CONTACT_EMAIL não configurado")
	}
	return m.cfg.ContactEmail, nil
}

func (m *ResendMailer) send(to, subject, html, replyTo string) error {
	if !m.cfg.Enabled() {
		m.log.Warn().Str("subject", subject).Msg("mail: envio desabilitado, RESEND_API_KEY/EMAIL_FROM ausentes")
		return ErrNotConfigured
	}
	if to == "" {
		return fmt.Errorf("mail: destinatário vazio para %q", subject)
	}

	payload := resendRequest{
		From:    m.cfg.From,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		ReplyTo: replyTo,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("mail: serializar request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: criar HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mail: chamada HTTP falhou: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("mail: ler resposta: %w", err)
	}

	if resp.StatusCode >= 400 {
		detail := ""
		var errBody resendErrorBody
		if jsonErr := json.Unmarshal(rawBody, &errBody); jsonErr == nil {
			detail = errBody.detail()
		}
		if detail == "" {
			detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		m.log.Error().
			Int("status", resp.StatusCode).
			Str("to", to).
			Str("subject", subject).
			Str("key_prefix", keyPrefix(m.cfg.ResendAPIKey)).
			Msg("mail: Resend recusou o envio")
		return fmt.Errorf("mail: Resend %d: %s", resp.StatusCode, detail)
	}

	m.log.Info().Int("status", resp.StatusCode).Str("to", to).Str("subject", subject).Msg("mail: e-mail enviado")
	return nil
}

// keyPrefix devolve o começo da chave para log de diagnóstico, sem vazá-la.
func keyPrefix(key string) string {
	if len(key) <= 6 {
		return key
	}
	return key[:6]
}
