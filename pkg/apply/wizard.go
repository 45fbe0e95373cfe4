package apply

import (
	"strconv"

	"github.com/luminahr/portal/pkg/logx"
)

// DeepLink son los parámetros de entrada del asistente, tal como llegan
// en la query string de la página de postulación
type DeepLink struct {
	Step    string
	OfferID string
}

// ConsumeDeepLink aplica los parámetros de entrada exactamente una vez.
// Llamadas posteriores son no-ops: el flag ParamsConsumed hace explícito
// el contrato de un solo uso.
func (d Draft) ConsumeDeepLink(link DeepLink) Draft {
	if d.ParamsConsumed {
		return d
	}
	d.ParamsConsumed = true

	if link.Step != "" {
		if step, err := strconv.Atoi(link.Step); err == nil && step >= MinStep && step <= MaxStep {
			d.CurrentStep = step
		}
		// fuera de [1,10] el parámetro se ignora y el paso queda en su default
	}

	if link.OfferID != "" && link.OfferID != d.OfferID {
		d.OfferID = link.OfferID
	}

	return d.touched()
}

// Next avanza al siguiente paso si el actual valida. Un avance bloqueado
// no es un error: el paso simplemente no cambia (el control está
// deshabilitado del lado del cliente; esto solo se registra para diagnóstico).
func (d Draft) Next() Draft {
	if !IsStepValid(d.CurrentStep, d) {
		logx.WithFields(logx.Fields{
			"draft_id": d.ID.String(),
			"step":     d.CurrentStep,
		}).Debug("next blocked: step validation failed")
		return d
	}
	if d.CurrentStep >= MaxStep {
		return d
	}
	d.CurrentStep++
	return d.touched()
}

// Previous retrocede un paso; siempre permitido por encima del paso 1
func (d Draft) Previous() Draft {
	if d.CurrentStep <= MinStep {
		return d
	}
	d.CurrentStep--
	return d.touched()
}

// GoToStep salta directo a un paso desde el indicador. Se permite volver
// a cualquier paso ya visitado o avanzar exactamente uno (con la misma
// validación que Next); saltar más adelante es un error.
func (d Draft) GoToStep(step int) (Draft, error) {
	if step < MinStep || step > MaxStep {
		return d, ErrInvalidStep().WithDetail("step", step)
	}

	if step <= d.CurrentStep {
		d.CurrentStep = step
		return d.touched(), nil
	}

	if step == d.CurrentStep+1 {
		return d.Next(), nil
	}

	return d, ErrStepNotReachable().
		WithDetail("current_step", d.CurrentStep).
		WithDetail("requested_step", step)
}
