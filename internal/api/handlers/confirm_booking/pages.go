package confirm_booking

import "fmt"

// Страницы-исходы для ссылки из письма; открываются в браузере клиента

const pageTemplate = `<!DOCTYPE html>
<html lang="es">
<head><meta charset="utf-8"><title>Pablo BarberShop</title></head>
<body style="font-family: sans-serif; text-align: center; padding: 3em;">
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

func pageConfirmed(date, startTime string) string {
	return fmt.Sprintf(pageTemplate,
		"¡Cita confirmada!",
		fmt.Sprintf("Te esperamos el %s a las %s.", date, startTime))
}

func pageAlreadyConfirmed() string {
	return fmt.Sprintf(pageTemplate,
		"La cita ya estaba confirmada",
		"No hace falta hacer nada más. ¡Te esperamos!")
}

func pageNotFound() string {
	return fmt.Sprintf(pageTemplate,
		"Reserva no encontrada",
		"El enlace no es válido o la reserva expiró sin confirmarse.")
}

func pageCalendarUnavailable() string {
	return fmt.Sprintf(pageTemplate,
		"No hemos podido confirmar la cita",
		"Inténtalo de nuevo en unos minutos desde el mismo enlace.")
}

func pageInternalError() string {
	return fmt.Sprintf(pageTemplate,
		"Algo ha ido mal",
		"Inténtalo de nuevo más tarde.")
}
