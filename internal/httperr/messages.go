package httperr

var messages = map[string]string{
	"invalid_duration":       "Duração inválida.",
	"invalid_working_hours":  "Horário de trabalho inválido.",
	"empty_day_range":        "Nenhum dia informado.",
	"invalid_window":         "Janela de horário inválida.",
	"invalid_time_of_day":    "Horário inválido.",
	"invalid_status":         "Status inválido.",
	"invalid_state":          "Transição de status não permitida.",
	"no_services_selected":   "Selecione pelo menos um serviço.",
	"invalid_price":          "Preço inválido.",
	"time_conflict":          "Conflito de horário.",
	"outside_working_hours":  "Fora do horário de atendimento.",
	"too_soon":               "Horário inválido.",
	"invalid_date_or_time":   "Data ou hora inválida.",
	"invalid_rating":         "Nota deve ser entre 1 e 5.",
	"comment_too_long":       "Comentário não deve exceder 500 caracteres.",
	"already_reviewed":       "Agendamento já avaliado.",
	"not_completed":          "Apenas agendamentos concluídos podem ser avaliados.",
	"barbershop_not_found":   "Barbearia não encontrada.",
	"barber_not_found":       "Barbeiro não encontrado.",
	"appointment_not_found":  "Agendamento não encontrado.",
	"product_not_found":      "Serviço não encontrado.",
	"invalid_image":          "Imagem inválida.",
	"storage_not_configured": "Armazenamento de imagens não configurado.",
	"invalid_date":           "Data inválida.",
	"invalid_period":         "Período inválido.",
	"invalid_request":        "Requisição inválida.",
	"invalid_credentials":    "Credenciais inválidas.",
	"email_already_used":     "E-mail já cadastrado.",
	"invalid_email":          "E-mail inválido.",
	"invalid_phone":          "Telefone inválido.",
	"appointment_in_past":    "Agendamento já ocorreu.",
	"availability_failed":    "Não foi possível calcular a disponibilidade.",
	"forbidden":              "Acesso negado.",
	"rate_limited":           "Muitas requisições. Tente novamente em instantes.",
	"internal_error":         "Erro interno.",
}

func messageFor(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return code
}
