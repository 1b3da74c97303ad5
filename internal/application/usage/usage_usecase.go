// Package usage implementa las operaciones de ciclo de vida de las
// instancias: registro de consumo y cancelación.
package usage

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tu-usuario/cloud-billing/internal/application/dto"
	"github.com/tu-usuario/cloud-billing/internal/domain"
	"github.com/tu-usuario/cloud-billing/internal/domain/entity"
	"github.com/tu-usuario/cloud-billing/internal/store"
	"github.com/tu-usuario/cloud-billing/pkg/fechas"
)

// UseCase operaciones sobre instancias.
type UseCase struct {
	store *store.Store
	log   zerolog.Logger
}

// New construye el caso de uso.
func New(s *store.Store, log zerolog.Logger) *UseCase {
	return &UseCase{store: s, log: log}
}

// RegistrarConsumo anexa un evento de uso a una instancia vigente. El
// consumo sobre una instancia cancelada se rechaza con
// ErrInstanciaCancelada; nunca se lanza como fallo fatal.
func (uc *UseCase) RegistrarConsumo(in dto.RegistrarConsumoRequest) error {
	inst, err := uc.buscarInstancia(in.IDInstancia, in.NITCliente)
	if err != nil {
		return err
	}
	if !inst.Vigente() {
		return domain.ErrInstanciaCancelada
	}
	if !in.Tiempo.IsPositive() {
		return fmt.Errorf("tiempo de consumo debe ser positivo: %w", domain.ErrInvalidInput)
	}
	fechaHora := fechas.ExtraerFechaHora(in.FechaHora)
	if fechaHora == "" {
		return fmt.Errorf("fecha/hora de consumo: %w", domain.ErrInvalidInput)
	}
	inst.AgregarConsumo(entity.Consumo{Tiempo: in.Tiempo, FechaHora: fechaHora})
	uc.log.Debug().
		Int("instancia", inst.ID).
		Str("fechahora", fechaHora).
		Msg("consumo registrado")
	return nil
}

// CancelarInstancia pasa la instancia a Cancelada con su fecha final.
// Repetir la cancelación es un no-op.
func (uc *UseCase) CancelarInstancia(in dto.CancelarInstanciaRequest) error {
	inst, err := uc.buscarInstancia(in.IDInstancia, in.NITCliente)
	if err != nil {
		return err
	}
	fechaFinal := fechas.Extraer(in.FechaFinal)
	if fechaFinal == "" {
		return fmt.Errorf("fecha final: %w", domain.ErrInvalidInput)
	}
	inst.Cancelar(fechaFinal)
	uc.log.Info().Int("instancia", inst.ID).Str("fechaFinal", inst.FechaFinal).Msg("instancia cancelada")
	return nil
}

// buscarInstancia resuelve la instancia y verifica que pertenezca al
// cliente indicado.
func (uc *UseCase) buscarInstancia(id int, nitCliente string) (*entity.Instancia, error) {
	inst, ok := uc.store.Instancia(id)
	if !ok || inst.NITCliente != nitCliente {
		return nil, domain.ErrNotFound
	}
	return inst, nil
}
