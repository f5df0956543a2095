package mailer

import "time"

// Config настройки SMTP и базовый URL приложения для ссылок в письмах
type Config struct {
	SMTPHost   string
	SMTPPort   int
	User       string
	Password   string
	From       string
	AppBaseURL string
}

// BookingConfirmation данные письма подтверждения записи.
// Token используется для сборки ссылок подтверждения и отмены.
type BookingConfirmation struct {
	To           string
	CustomerName string
	StaffName    string
	Services     []string
	Start        time.Time
	End          time.Time
	Location     *time.Location
	HoldMinutes  int
	Token        string
}
