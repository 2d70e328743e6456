// seed genera un script SQL para poblar el catálogo inicial (categorías y
// medicamentos) a partir de un XML de registro sanitario tipo vademécum.
//
// Uso: go run ./cmd/seed [ruta/Vademecum.xml]
// Por defecto busca Vademecum.xml en el directorio actual.
// Escribe: db/seed_catalog.sql
package main

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type vademecum struct {
	Medicamentos []medicamento `xml:"medicamento"`
}

type medicamento struct {
	Nombre      string `xml:"nombre,attr"`
	Categoria   string `xml:"categoria,attr"`
	PrecioVenta string `xml:"precioVenta,attr"`
	PrecioCosto string `xml:"precioCosto,attr"`
}

func main() {
	xmlPath := "Vademecum.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}
	f, err := os.Open(xmlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir XML: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var v vademecum
	dec := xml.NewDecoder(f)
	// Los registros sanitarios suelen venir en ISO-8859-1
	dec.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := dec.Decode(&v); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar XML: %v\n", err)
		os.Exit(1)
	}

	// Categorías únicas, ordenadas para un diff estable del script
	categoryIDs := make(map[string]string)
	for _, m := range v.Medicamentos {
		if m.Nombre == "" {
			continue
		}
		cat := m.Categoria
		if cat == "" {
			cat = "General"
		}
		if _, ok := categoryIDs[cat]; !ok {
			categoryIDs[cat] = uuid.NewString()
		}
	}
	catNames := make([]string, 0, len(categoryIDs))
	for name := range categoryIDs {
		catNames = append(catNames, name)
	}
	sort.Strings(catNames)

	var b strings.Builder
	b.WriteString("-- Generado por cmd/seed. No editar a mano.\n")
	b.WriteString("BEGIN;\n\n")
	for _, name := range catNames {
		fmt.Fprintf(&b, "INSERT INTO categories (id, name, created_at) VALUES ('%s', '%s', NOW()) ON CONFLICT (name) DO NOTHING;\n",
			categoryIDs[name], sqlEscape(name))
	}
	b.WriteString("\n")
	for _, m := range v.Medicamentos {
		if m.Nombre == "" {
			continue
		}
		cat := m.Categoria
		if cat == "" {
			cat = "General"
		}
		selling := priceOrZero(m.Nombre, m.PrecioVenta)
		buying := priceOrZero(m.Nombre, m.PrecioCosto)
		fmt.Fprintf(&b, "INSERT INTO medicines (id, name, category_id, supplier_id, quantity_in_stock, buying_price, selling_price, created_at, updated_at) VALUES ('%s', '%s', '%s', '', 0, %s, %s, NOW(), NOW()) ON CONFLICT (name) DO NOTHING;\n",
			uuid.NewString(), sqlEscape(m.Nombre), categoryIDs[cat], buying, selling)
	}
	b.WriteString("\nCOMMIT;\n")

	outPath := filepath.Join("db", "seed_catalog.sql")
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outPath, []byte(b.String()), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s: %d categorías, %d medicamentos\n", outPath, len(catNames), len(v.Medicamentos))
}

func sqlEscape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// priceOrZero parsea el atributo como decimal y lo reemite normalizado, para
// que al SQL generado solo lleguen literales numéricos válidos.
func priceOrZero(name, s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "0"
	}
	v, err := decimal.NewFromString(s)
	if err != nil || v.IsNegative() {
		fmt.Fprintf(os.Stderr, "Precio inválido %q en %q, se usa 0\n", s, name)
		return "0"
	}
	return v.String()
}
