package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// TypeInfoDTO identidad de catálogo de un tipo para respuestas HTTP.
type TypeInfoDTO struct {
	TypeID     int32           `json:"type_id"`
	TypeName   string          `json:"type_name"`
	GroupID    int32           `json:"group_id"`
	GroupName  string          `json:"group_name"`
	UnitVolume decimal.Decimal `json:"unit_volume"`
}

// FromTypeInfo convierte la entidad de catálogo a su DTO.
func FromTypeInfo(info *entity.TypeInfo) TypeInfoDTO {
	return TypeInfoDTO{
		TypeID:     info.TypeID,
		TypeName:   info.TypeName,
		GroupID:    info.GroupID,
		GroupName:  info.GroupName,
		UnitVolume: info.UnitVolume,
	}
}
