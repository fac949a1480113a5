package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var businessMessages = map[string]struct {
	status  int
	message string
}{
	"barbershop_not_found":  {http.StatusNotFound, "Barbearia não encontrada."},
	"appointment_not_found": {http.StatusNotFound, "Agendamento não encontrado."},
	"barber_not_found":      {http.StatusBadRequest, "Barbeiro não encontrado."},
	"service_not_found":     {http.StatusBadRequest, "Serviço não encontrado."},
	"client_not_found":      {http.StatusBadRequest, "Cliente não encontrado."},
	"invalid_client":        {http.StatusBadRequest, "Nome e telefone do cliente são obrigatórios."},
	"invalid_date_or_time":  {http.StatusBadRequest, "Data ou hora inválida."},
	"time_conflict":         {http.StatusConflict, "Horário indisponível. Escolha outro horário."},
	"invalid_state":         {http.StatusConflict, "Agendamento não pode ser alterado."},
	"lead_time_violation":   {http.StatusUnprocessableEntity, "Prazo mínimo para alteração expirado."},
	"slot_unavailable":      {http.StatusUnprocessableEntity, "Horário fora do expediente ou já passou."},
}

// writeBookingError maps business errors to their HTTP status; anything
// else is a 500.
func writeBookingError(c *gin.Context, log *zap.Logger, err error) {
	code := httperr.Code(err)
	if m, ok := businessMessages[code]; ok {
		httperr.Write(c, m.status, code, m.message)
		return
	}

	log.Error("booking request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
}

// writeSlots answers read endpoints. Business errors are reported as such;
// storage failures degrade to an empty list so the client can retry.
func writeSlots(c *gin.Context, log *zap.Logger, date string, slots []string, err error) {
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
		return
	}
	if _, ok := businessMessages[httperr.Code(err)]; ok {
		writeBookingError(c, log, err)
		return
	}

	log.Error("availability degraded",
		zap.String("path", c.FullPath()),
		zap.String("date", date),
		zap.Error(err),
	)
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": []string{}, "degraded": true})
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
