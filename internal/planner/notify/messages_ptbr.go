package notify

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	// Initial outreach
	message.SetString(lang, outreachSubjectKey, "Ajude a Planejar: %s com %s")
	message.SetString(lang, outreachBodyKey,
		"Olá %s, %s está planejando %s e me pediu (uma assistente de IA) para ajudar na coordenação. "+
			"Como você prefere responder algumas perguntas sobre suas preferências? "+
			"Responda com: 1 para mensagem de texto, 2 para e-mail ou 3 para uma ligação.")

	// Preference questions
	message.SetString(lang, questionBodyKey, "%s")
	message.SetString(lang, questionScriptKey, "Olá, tenho uma pergunta sobre as suas preferências. %s")

	// Continuation checkpoint and wrap-up
	message.SetString(lang, continuationBodyKey,
		"Obrigada pelas suas respostas até agora! Você toparia responder mais "+
			"algumas perguntas para ajudar a planejar o evento perfeito? Responda SIM "+
			"para continuar ou NÃO para encerrar.")
	message.SetString(lang, thanksBodyKey,
		"Obrigada por compartilhar suas preferências! Vou usar essas informações "+
			"para ajudar a criar um plano que funcione para todo mundo. Você receberá "+
			"a proposta assim que estiver pronta.")

	// Plan review with the organizer
	message.SetString(lang, planProposedSubjectKey, "Proposta de Plano para %s")
	message.SetString(lang, planProposedBodyKey,
		"Olá %s, criei uma proposta de plano para %s com base nas preferências de todos:\n\n%s\n\n"+
			"Responda APROVAR para confirmar este plano, ou REVISAR seguido do seu "+
			"feedback se quiser mudanças.")

	// Approved plan distribution
	message.SetString(lang, planApprovedSubjectKey, "Plano Aprovado para %s")
	message.SetString(lang, planApprovedBodyKey,
		"Olá %s, %s aprovou o plano para %s:\n\n%s\n\n"+
			"Responda SIM se funciona para você, ou NÃO seguido de qualquer "+
			"preocupação se tiver problemas com este plano.")
	message.SetString(lang, planApprovedScriptKey, "Olá %s, estou ligando sobre o plano para %s. %s")

	// Participant concerns back to the organizer
	message.SetString(lang, planRejectedSubjectKey, "Feedback sobre o Plano para %s")
	message.SetString(lang, planRejectedBodyKey,
		"Olá %s, %s tem preocupações sobre o plano para %s.\n\n"+
			"Feedback: %s\n\n"+
			"Quer que eu crie um plano revisado? Responda SIM para criar um novo plano, "+
			"ou CONTINUAR para seguir com o plano atual.")

	// Plan summary block
	message.SetString(lang, planHeaderKey, "PLANO PARA: %s")
	message.SetString(lang, planDateKey, "DATA: %s")
	message.SetString(lang, planTimeKey, "HORÁRIO: %s")
	message.SetString(lang, planLocationKey, "LOCAL: %s")
	message.SetString(lang, planActivitiesKey, "ATIVIDADES: %s")
	message.SetString(lang, planNotesKey, "OBSERVAÇÕES:\n%s")
	message.SetString(lang, planUnknownKey, "A definir")
}
