package planning

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Industria-api/internal/domain/entity"
)

// ParseStockText convierte una lista tabular de stock (formato portapapeles
// del juego: "nombre<TAB>cantidad" por línea, o solo el nombre para cantidad 1)
// en items sin resolver. Parser puro, sin dependencia del motor: las líneas
// vacías, con más de dos campos o con cantidad no numérica se omiten.
func ParseStockText(text string) []entity.Item {
	var items []entity.Item

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, "\t")
		switch len(parts) {
		case 1:
			items = append(items, entity.Item{
				TypeName: strings.TrimSpace(parts[0]),
				Quantity: 1,
			})
		case 2:
			qty, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
			if err != nil {
				continue
			}
			items = append(items, entity.Item{
				TypeName: strings.TrimSpace(parts[0]),
				Quantity: qty,
			})
		}
	}

	return items
}
