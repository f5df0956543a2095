package mailer

import (
	"fmt"
	"html"
	"strings"

	gomail "gopkg.in/gomail.v2"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// sender отправляет собранное письмо; выделен для подмены SMTP в тестах
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Client отправляет письма подтверждения записи через SMTP.
// Отказ отправки не должен ронять бронирование: вызывающая сторона
// логирует ошибку и продолжает.
type Client struct {
	cfg    Config
	dialer sender
	log    Logger
}

// NewClient создает SMTP клиент рассылки
func NewClient(cfg Config, log Logger) *Client {
	return &Client{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.User, cfg.Password),
		log:    log,
	}
}

// SendBookingConfirmation отправляет клиенту письмо с деталями записи
// и ссылками для подтверждения и отмены по токену.
func (c *Client) SendBookingConfirmation(data BookingConfirmation) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.cfg.From)
	m.SetHeader("To", data.To)
	m.SetHeader("Subject", "Confirma tu cita en Pablo BarberShop")
	m.SetBody("text/html", c.buildConfirmationBody(data))

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: SendBookingConfirmation - to=%s: %v", ErrSend, data.To, err)
	}

	c.log.Info("SendBookingConfirmation: sent confirmation email to=%s", data.To)

	return nil
}

func (c *Client) buildConfirmationBody(data BookingConfirmation) string {
	start := data.Start
	if data.Location != nil {
		start = start.In(data.Location)
	}

	confirmURL := fmt.Sprintf("%s/api/v1/appointments/confirm?token=%s", c.cfg.AppBaseURL, data.Token)
	cancelURL := fmt.Sprintf("%s/api/v1/appointments/cancel?token=%s", c.cfg.AppBaseURL, data.Token)

	services := html.EscapeString(strings.Join(data.Services, ", "))

	var b strings.Builder
	b.WriteString("<h2>Hola ")
	b.WriteString(html.EscapeString(data.CustomerName))
	b.WriteString(",</h2>")
	b.WriteString("<p>Hemos recibido tu solicitud de cita:</p><ul>")
	fmt.Fprintf(&b, "<li><b>Fecha:</b> %s</li>", start.Format("02/01/2006"))
	fmt.Fprintf(&b, "<li><b>Hora:</b> %s</li>", start.Format("15:04"))
	fmt.Fprintf(&b, "<li><b>Servicios:</b> %s</li>", services)
	fmt.Fprintf(&b, "<li><b>Profesional:</b> %s</li>", html.EscapeString(data.StaffName))
	b.WriteString("</ul>")
	fmt.Fprintf(&b,
		"<p>Tienes <b>%d minutos</b> para confirmar tu cita, de lo contrario la reserva quedará liberada.</p>",
		data.HoldMinutes)
	fmt.Fprintf(&b, `<p><a href="%s">Confirmar cita</a></p>`, confirmURL)
	fmt.Fprintf(&b, `<p>Si no puedes asistir, puedes <a href="%s">cancelar la cita</a>.</p>`, cancelURL)
	b.WriteString("<p>¡Te esperamos!<br>Pablo BarberShop</p>")

	return b.String()
}
