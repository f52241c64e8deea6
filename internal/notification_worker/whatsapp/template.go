// Package whatsapp renders the outbound pt-BR message templates and sends
// them through an Evolution-API-compatible provider.
package whatsapp

import (
	"fmt"
	"strings"
	"time"

	"github.com/barbearia-digital/booking-ledger/internal/domain/shared"
)

// time.Format has no locale support, so the pt-BR names live here.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "domingo",
	time.Monday:    "segunda-feira",
	time.Tuesday:   "terça-feira",
	time.Wednesday: "quarta-feira",
	time.Thursday:  "quinta-feira",
	time.Friday:    "sexta-feira",
	time.Saturday:  "sábado",
}

var monthNames = map[time.Month]string{
	time.January:   "janeiro",
	time.February:  "fevereiro",
	time.March:     "março",
	time.April:     "abril",
	time.May:       "maio",
	time.June:      "junho",
	time.July:      "julho",
	time.August:    "agosto",
	time.September: "setembro",
	time.October:   "outubro",
	time.November:  "novembro",
	time.December:  "dezembro",
}

// ServiceLabel maps a service kind to its customer-facing name
func ServiceLabel(service string) string {
	switch service {
	case "haircut":
		return "Corte"
	case "beard":
		return "Barba"
	case "combo":
		return "Corte + Barba"
	}
	return service
}

// FormatDate renders a YYYY-MM-DD date as "sexta-feira, 15 de agosto".
// An unparseable date is returned as-is rather than dropped from the message.
func FormatDate(date string) string {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s, %02d de %s", weekdayNames[parsed.Weekday()], parsed.Day(), monthNames[parsed.Month()])
}

// FormatPrice renders a centavo amount as "R$ 45,00"
func FormatPrice(centavos int64) string {
	return fmt.Sprintf("R$ %d,%02d", centavos/100, centavos%100)
}

// RenderMessage builds the outbound message text for the given intent
func RenderMessage(intent *shared.NotificationIntent) string {
	service := ServiceLabel(intent.Service)
	date := FormatDate(intent.Date)
	price := FormatPrice(intent.Price)

	switch intent.Kind {
	case shared.NotificationKindConfirmation:
		return strings.Join([]string{
			"✅ *Agendamento Confirmado!*",
			"",
			fmt.Sprintf("Olá %s!", intent.ClientName),
			"",
			"Seu agendamento foi *confirmado* com sucesso:",
			"",
			fmt.Sprintf("📅 *Data:* %s", date),
			fmt.Sprintf("🕐 *Horário:* %s", intent.Time),
			fmt.Sprintf("✂️ *Serviço:* %s", service),
			fmt.Sprintf("💰 *Valor:* %s", price),
			"",
			"Estamos ansiosos para atendê-lo!",
			"",
			"Em caso de dúvidas, entre em contato conosco.",
		}, "\n")

	case shared.NotificationKindReschedule:
		return strings.Join([]string{
			"🔄 *Agendamento Remarcado!*",
			"",
			fmt.Sprintf("Olá %s!", intent.ClientName),
			"",
			"Seu agendamento foi *remarcado*:",
			"",
			fmt.Sprintf("📅 *Nova Data:* %s", date),
			fmt.Sprintf("🕐 *Novo Horário:* %s", intent.Time),
			fmt.Sprintf("✂️ *Serviço:* %s", service),
			fmt.Sprintf("💰 *Valor:* %s", price),
			"",
			"Aguardamos você no novo horário!",
			"",
			"Em caso de dúvidas, entre em contato conosco.",
		}, "\n")

	case shared.NotificationKindCancellation:
		return strings.Join([]string{
			"❌ *Agendamento Cancelado*",
			"",
			fmt.Sprintf("Olá %s!", intent.ClientName),
			"",
			"Infelizmente seu agendamento foi *cancelado*:",
			"",
			fmt.Sprintf("📅 *Data:* %s", date),
			fmt.Sprintf("🕐 *Horário:* %s", intent.Time),
			fmt.Sprintf("✂️ *Serviço:* %s", service),
			"",
			"Sentimos muito pelo inconveniente.",
			"",
			"Para reagendar, entre em contato conosco ou acesse nosso sistema.",
		}, "\n")

	case shared.NotificationKindReminder:
		return strings.Join([]string{
			"⏰ *Lembrete de Agendamento*",
			"",
			fmt.Sprintf("Olá %s!", intent.ClientName),
			"",
			"Este é um lembrete do seu agendamento:",
			"",
			fmt.Sprintf("📅 *Data:* %s", date),
			fmt.Sprintf("🕐 *Horário:* %s", intent.Time),
			fmt.Sprintf("✂️ *Serviço:* %s", service),
			fmt.Sprintf("💰 *Valor:* %s", price),
			"",
			"Nos vemos em breve! 🎉",
			"",
			"Em caso de necessidade de remarcar, entre em contato com antecedência.",
		}, "\n")
	}

	return fmt.Sprintf("Olá %s! Seu agendamento está confirmado para %s às %s.", intent.ClientName, date, intent.Time)
}
