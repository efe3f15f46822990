// seed_sde genera scripts SQL para poblar el catálogo SDE (tipos, grupos,
// blueprints y esquemas planetarios) a partir de los dumps CSV oficiales.
//
// Uso: go run ./cmd/seed_sde [directorio-con-csv]
// Por defecto busca los CSV en el directorio actual. Espera los archivos:
//
//	invGroups.csv, invTypes.csv, industryBlueprints.csv, industryActivity.csv,
//	industryActivityProducts.csv, industryActivityMaterials.csv,
//	planetSchematicsTypeMap.csv
//
// Los dumps vienen en Latin-1; se transcodifican a UTF-8 al leer.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvDir := "."
	if len(os.Args) > 1 {
		csvDir = os.Args[1]
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo SDE: tipos, grupos, blueprints y esquemas planetarios\n")
	out.WriteString("-- Generado desde los dumps CSV con cmd/seed_sde\n\n")

	// El orden respeta las claves foráneas: grupos antes que tipos.
	sections := []struct {
		file    string
		title   string
		emit    func(w io.Writer, rec []string) error
		minCols int
	}{
		{
			file: "invGroups.csv", title: "Grupos", minCols: 2,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO inv_groups (group_id, group_name) VALUES (%s, '%s') ON CONFLICT (group_id) DO UPDATE SET group_name = EXCLUDED.group_name;\n",
					rec[0], escapeSQL(rec[1]))
				return err
			},
		},
		{
			file: "invTypes.csv", title: "Tipos", minCols: 4,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO inv_types (type_id, type_name, group_id, volume) VALUES (%s, '%s', %s, %s) ON CONFLICT (type_id) DO UPDATE SET type_name = EXCLUDED.type_name, group_id = EXCLUDED.group_id, volume = EXCLUDED.volume;\n",
					rec[0], escapeSQL(rec[1]), nullable(rec[2]), numericOrZero(rec[3]))
				return err
			},
		},
		{
			file: "industryBlueprints.csv", title: "Blueprints", minCols: 2,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO industry_blueprints (type_id, max_production_limit) VALUES (%s, %s) ON CONFLICT (type_id) DO UPDATE SET max_production_limit = EXCLUDED.max_production_limit;\n",
					rec[0], numericOrZero(rec[1]))
				return err
			},
		},
		{
			file: "industryActivity.csv", title: "Actividades", minCols: 3,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO industry_activities (type_id, activity_id, time) VALUES (%s, %s, %s) ON CONFLICT (type_id, activity_id) DO UPDATE SET time = EXCLUDED.time;\n",
					rec[0], rec[1], numericOrZero(rec[2]))
				return err
			},
		},
		{
			file: "industryActivityProducts.csv", title: "Productos por actividad", minCols: 4,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO industry_activity_products (type_id, activity_id, product_type_id, quantity) VALUES (%s, %s, %s, %s) ON CONFLICT (type_id, activity_id, product_type_id) DO UPDATE SET quantity = EXCLUDED.quantity;\n",
					rec[0], rec[1], rec[2], numericOrZero(rec[3]))
				return err
			},
		},
		{
			file: "industryActivityMaterials.csv", title: "Materiales por actividad", minCols: 4,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO industry_activity_materials (type_id, activity_id, material_type_id, quantity) VALUES (%s, %s, %s, %s) ON CONFLICT (type_id, activity_id, material_type_id) DO UPDATE SET quantity = EXCLUDED.quantity;\n",
					rec[0], rec[1], rec[2], numericOrZero(rec[3]))
				return err
			},
		},
		{
			file: "planetSchematicsTypeMap.csv", title: "Esquemas planetarios", minCols: 4,
			emit: func(w io.Writer, rec []string) error {
				_, err := fmt.Fprintf(w,
					"INSERT INTO planet_schematics_type_maps (schematic_id, type_id, quantity, is_input) VALUES (%s, %s, %s, %s) ON CONFLICT (schematic_id, type_id) DO UPDATE SET quantity = EXCLUDED.quantity, is_input = EXCLUDED.is_input;\n",
					rec[0], rec[1], numericOrZero(rec[2]), boolSQL(rec[3]))
				return err
			},
		},
	}

	total := 0
	for _, s := range sections {
		n, err := emitSection(out, filepath.Join(csvDir, s.file), s.title, s.minCols, s.emit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", s.file, err)
			os.Exit(1)
		}
		total += n
	}

	fmt.Printf("Generado %s: %d filas\n", outPath, total)
}

// emitSection lee un CSV Latin-1 (con cabecera) y emite un INSERT por fila.
func emitSection(out io.Writer, path, title string, minCols int, emit func(io.Writer, []string) error) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	fmt.Fprintf(out, "-- %s\n", title)

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = -1

	n := 0
	header := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, fmt.Errorf("leer CSV: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(rec) < minCols || rec[0] == "" {
			continue
		}
		if err := emit(out, rec); err != nil {
			return n, err
		}
		n++
	}
	fmt.Fprintln(out)
	return n, nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "'", "''")
}

// nullable: los dumps usan "None" para columnas sin valor.
func nullable(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "None") {
		return "NULL"
	}
	return s
}

func numericOrZero(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "None") {
		return "0"
	}
	return s
}

func boolSQL(s string) string {
	s = strings.TrimSpace(s)
	if s == "1" || strings.EqualFold(s, "true") {
		return "TRUE"
	}
	return "FALSE"
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
