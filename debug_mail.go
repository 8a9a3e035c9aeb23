package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

func main() {
	// 1. Dados copiados EXATAMENTE do seu .env
	// ATENÇÃO: confira que a chave é 100% a mesma. Copie e cole do seu .env
	resendKey := "re_123456789_ABCDEFGHIJKLMNOPQRSTUVWX"
	mailFrom := "ALP Oficinas <contato@alpsistemas.com.br>"

	fmt.Println("🔍 DIAGNÓSTICO DO ENVIO DE E-MAIL (RESEND)")
	fmt.Println("------------------------------------------")
	fmt.Printf("🔑 Chave em uso: %s...\n", resendKey[:min(8, len(resendKey))])

	// 2. Conferir o formato da chave (Format Check)
	if !strings.HasPrefix(resendKey, "re_") {
		fmt.Println("\n❌ ERRO DE FORMATO:")
		fmt.Println("   Chave do Resend sempre começa com 're_'. A sua não começa.")
		fmt.Println("   Provavelmente você copiou o valor errado do painel.")
		return
	}
	fmt.Println("✅ Formato da chave ok.")

	// 3. Disparar um envio de verdade (API Check)
	// delivered@resend.dev é o endereço de teste do Resend: aceita sem entregar.
	fmt.Println("\n📨 Enviando e-mail de teste para delivered@resend.dev...")
	payload, _ := json.Marshal(map[string]any{
		"from":    mailFrom,
		"to":      []string{"delivered@resend.dev"},
		"subject": "Teste de diagnóstico - ALP Oficinas",
		"html":    "<p>Se você está lendo isto no painel do Resend, o envio funciona.</p>",
	})
	req, _ := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+resendKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Println("\n❌ ERRO DE REDE:")
		fmt.Printf("   Não deu para alcançar api.resend.com.\n")
		fmt.Printf("   Detalhe técnico: %v\n", err)
		return
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	switch {
	case resp.StatusCode == 401:
		fmt.Println("\n❌ ERRO DE CHAVE:")
		fmt.Println("   O Resend respondeu 401. A chave existe mas está errada ou foi revogada.")
		fmt.Printf("   Resposta: %s\n", body)
		return
	case resp.StatusCode == 403 || resp.StatusCode == 422:
		fmt.Printf("\n❌ ERRO DE REMETENTE (%d):\n", resp.StatusCode)
		fmt.Printf("   A chave vale, mas o domínio de '%s' não está verificado no painel.\n", mailFrom)
		fmt.Printf("   Resposta: %s\n", body)
		return
	case resp.StatusCode >= 400:
		fmt.Printf("\n❌ ERRO %d:\n", resp.StatusCode)
		fmt.Printf("   Resposta: %s\n", body)
		return
	}

	fmt.Println("\n✨ SUCESSO! Chave e remetente estão corretos.")
	fmt.Println("   O problema NÃO é o Resend, é como seu app carrega o .env.")
}
