package mail

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// Corpos em HTML simples, montados por concatenação. Valores vindos do
// usuário passam por html.EscapeString antes de entrar no corpo.

const signature = "<p>Equipe ALP Oficinas</p>"

func signupPendingHTML(userName, companyName string) string {
	return fmt.Sprintf(
		"<p>Olá, %s!</p>"+
			"<p>Recebemos o cadastro da oficina <strong>%s</strong>.</p>"+
			"<p>Seu acesso será liberado assim que o pagamento do plano for confirmado. "+
			"Avisaremos por este e-mail.</p>"+signature,
		html.EscapeString(userName), html.EscapeString(companyName))
}

func signupNoticeHTML(companyName, taxID, plan, period string) string {
	return fmt.Sprintf(
		"<p>Nova oficina cadastrada aguardando aprovação:</p>"+
			"<p><strong>Oficina:</strong> %s<br>"+
			"<strong>CNPJ/CPF:</strong> %s<br>"+
			"<strong>Plano:</strong> %s (%s)</p>",
		html.EscapeString(companyName), html.EscapeString(taxID),
		html.EscapeString(plan), html.EscapeString(period))
}

func passwordResetHTML(userName, token string, ttl time.Duration) string {
	return fmt.Sprintf(
		"<p>Olá, %s.</p>"+
			"<p>Recebemos uma solicitação de recuperação de senha. "+
			"Use o código abaixo na tela de redefinição:</p>"+
			"<p><code>%s</code></p>"+
			"<p>O código vale por %d minutos. Se você não solicitou, ignore esta mensagem.</p>"+signature,
		html.EscapeString(userName), html.EscapeString(token), int(ttl.Minutes()))
}

func accountApprovedHTML(userName, companyName string, expiresAt time.Time) string {
	return fmt.Sprintf(
		"<p>Olá, %s!</p>"+
			"<p>O pagamento da oficina <strong>%s</strong> foi confirmado e o acesso está liberado.</p>"+
			"<p>Seu plano é válido até <strong>%s</strong>.</p>"+signature,
		html.EscapeString(userName), html.EscapeString(companyName), expiresAt.Format("02/01/2006"))
}

func userCredentialsHTML(userName, username, password, companyName string) string {
	return fmt.Sprintf(
		"<p>Olá, %s!</p>"+
			"<p>Você foi cadastrado no sistema da oficina <strong>%s</strong>.</p>"+
			"<p><strong>Usuário:</strong> %s<br>"+
			"<strong>Senha inicial:</strong> <code>%s</code></p>"+
			"<p>Troque a senha no primeiro acesso.</p>"+signature,
		html.EscapeString(userName), html.EscapeString(companyName),
		html.EscapeString(username), html.EscapeString(password))
}

func renewalRequestedHTML(companyName, period string) string {
	return fmt.Sprintf(
		"<p>A oficina <strong>%s</strong> pediu renovação do plano.</p>"+
			"<p><strong>Período solicitado:</strong> %s</p>"+
			"<p>Confirme o pagamento no painel administrativo para aplicar.</p>",
		html.EscapeString(companyName), html.EscapeString(period))
}

func renewalAppliedHTML(userName, companyName string, expiresAt time.Time) string {
	return fmt.Sprintf(
		"<p>Olá, %s!</p>"+
			"<p>A renovação da oficina <strong>%s</strong> foi confirmada.</p>"+
			"<p>Novo vencimento do plano: <strong>%s</strong>.</p>"+signature,
		html.EscapeString(userName), html.EscapeString(companyName), expiresAt.Format("02/01/2006"))
}

func contactFormHTML(name, email, phone, message string) string {
	if phone == "" {
		phone = "-"
	}
	return fmt.Sprintf(
		"<p>Mensagem recebida pelo formulário de contato:</p>"+
			"<p><strong>Nome:</strong> %s<br>"+
			"<strong>E-mail:</strong> %s<br>"+
			"<strong>Telefone:</strong> %s</p>"+
			"<p><strong>Mensagem:</strong><br>%s</p>",
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(phone),
		strings.ReplaceAll(html.EscapeString(message), "\n", "<br>"))
}
