package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
	"github.com/jhoicas/Industria-api/internal/domain/planning"
)

// ItemRequest una línea de item en el cuerpo de la petición de plan.
type ItemRequest struct {
	TypeID   int32  `json:"type_id,omitempty"`
	TypeName string `json:"type_name"`
	Quantity int64  `json:"quantity"`
	// MaterialEfficiency porcentaje de ME del blueprint [0,100]; solo tiene
	// efecto en items_to_build.
	MaterialEfficiency int `json:"material_efficiency,omitempty"`
}

// PlanRequest cuerpo de POST /api/plans.
type PlanRequest struct {
	ItemsToBuild        []ItemRequest `json:"items_to_build"`
	OpeningStock        []ItemRequest `json:"opening_stock"`
	ClosingStockTargets []ItemRequest `json:"closing_stock_targets"`
}

// Items convierte las líneas de la petición a items de dominio.
func Items(reqs []ItemRequest) []entity.Item {
	items := make([]entity.Item, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, entity.Item{
			TypeID:             r.TypeID,
			TypeName:           r.TypeName,
			Quantity:           r.Quantity,
			MaterialEfficiency: r.MaterialEfficiency,
		})
	}
	return items
}

// LedgerEntryDTO una entrada del libro del plan en la respuesta.
type LedgerEntryDTO struct {
	TypeID               int32           `json:"type_id"`
	TypeName             string          `json:"type_name"`
	GroupID              int32           `json:"group_id"`
	GroupName            string          `json:"group_name"`
	OpeningStockQuantity int64           `json:"opening_stock_quantity"`
	QuantityNeeded       int64           `json:"quantity_needed"`
	QuantityProduced     int64           `json:"quantity_produced"`
	QuantityToBuy        int64           `json:"quantity_to_buy"`
	ClosingStockQuantity int64           `json:"closing_stock_quantity"`
	ToBuyVolume          decimal.Decimal `json:"to_buy_volume"`
}

// JobDTO un trabajo a instalar en la respuesta.
type JobDTO struct {
	BlueprintTypeID    int32           `json:"blueprint_type_id"`
	BlueprintTypeName  string          `json:"blueprint_type_name"`
	ActivityID         int32           `json:"activity_id"`
	TotalRunsToInstall int64           `json:"total_runs_to_install"`
	MaxRunsPerInstall  int64           `json:"max_runs_per_install"`
	BaseTimeSeconds    int64           `json:"base_time_seconds"`
	EstimatedItemValue decimal.Decimal `json:"estimated_item_value"`
	OutputTypeID       int32           `json:"output_type_id"`
	OutputQuantity     int64           `json:"output_quantity"`
	OutputGroupID      int32           `json:"output_group_id"`
	OutputGroupName    string          `json:"output_group_name"`
}

// PlanTotals agregados del plan.
type PlanTotals struct {
	Jobs               int             `json:"jobs"`
	EstimatedItemValue decimal.Decimal `json:"estimated_item_value"`
	ToBuyVolume        decimal.Decimal `json:"to_buy_volume"`
}

// PlanResponse cuerpo de respuesta de POST /api/plans.
type PlanResponse struct {
	PlanID        string           `json:"plan_id"`
	OpeningStock  []LedgerEntryDTO `json:"opening_stock"`
	PartsToBuild  []LedgerEntryDTO `json:"parts_to_build"`
	PartsToBuy    []LedgerEntryDTO `json:"parts_to_buy"`
	ClosingStock  []LedgerEntryDTO `json:"closing_stock"`
	Jobs          []JobDTO         `json:"jobs"`
	RejectedStock []ItemRequest    `json:"rejected_stock,omitempty"`
	Totals        PlanTotals       `json:"totals"`
}

// FromBuildPlan arma la respuesta a partir del plan y los rechazos de stock.
func FromBuildPlan(plan *planning.BuildPlan, rejected []entity.Item) PlanResponse {
	resp := PlanResponse{
		PlanID:       plan.ID().String(),
		OpeningStock: ledgerEntries(plan.OpeningStock()),
		PartsToBuild: ledgerEntries(plan.PartsToBuild()),
		PartsToBuy:   ledgerEntries(plan.PartsToBuy()),
		ClosingStock: ledgerEntries(plan.ClosingStock()),
	}

	totalEIV := decimal.Zero
	for _, job := range plan.Jobs() {
		resp.Jobs = append(resp.Jobs, JobDTO{
			BlueprintTypeID:    job.BlueprintTypeID,
			BlueprintTypeName:  job.BlueprintTypeName,
			ActivityID:         job.ActivityID,
			TotalRunsToInstall: job.TotalRunsToInstall,
			MaxRunsPerInstall:  job.MaxRunsPerInstall,
			BaseTimeSeconds:    job.BaseTimeSeconds,
			EstimatedItemValue: job.EstimatedItemValue,
			OutputTypeID:       job.OutputTypeID,
			OutputQuantity:     job.OutputQuantity,
			OutputGroupID:      job.OutputGroupID,
			OutputGroupName:    job.OutputGroupName,
		})
		totalEIV = totalEIV.Add(job.EstimatedItemValue)
	}

	totalVolume := decimal.Zero
	for _, e := range resp.PartsToBuy {
		totalVolume = totalVolume.Add(e.ToBuyVolume)
	}

	for _, item := range rejected {
		resp.RejectedStock = append(resp.RejectedStock, ItemRequest{
			TypeID:   item.TypeID,
			TypeName: item.TypeName,
			Quantity: item.Quantity,
		})
	}

	resp.Totals = PlanTotals{
		Jobs:               len(resp.Jobs),
		EstimatedItemValue: totalEIV,
		ToBuyVolume:        totalVolume,
	}
	return resp
}

func ledgerEntries(entries []*entity.InventoryLedgerEntry) []LedgerEntryDTO {
	out := make([]LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryDTO{
			TypeID:               e.TypeID,
			TypeName:             e.TypeName,
			GroupID:              e.GroupID,
			GroupName:            e.GroupName,
			OpeningStockQuantity: e.OpeningStockQuantity,
			QuantityNeeded:       e.QuantityNeeded,
			QuantityProduced:     e.QuantityProduced,
			QuantityToBuy:        e.QuantityToBuy(),
			ClosingStockQuantity: e.ClosingStockQuantity(),
			ToBuyVolume:          e.ToBuyVolume(),
		})
	}
	return out
}
