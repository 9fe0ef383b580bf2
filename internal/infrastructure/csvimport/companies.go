// Package csvimport carga empresas desde exportaciones CSV de hojas de cálculo.
package csvimport

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/foxred/hillary/internal/application/dto"
)

// Row empresa leída junto con su línea en el archivo.
type Row struct {
	Line    int
	Company dto.CreateCompanyRequest
}

// ReadCompanies lee filas name,tax_id,address,phone,email. La cabecera es opcional y
// el separador puede ser coma o punto y coma. latin1 decodifica ISO-8859-1.
// Un BOM inicial se descarta y manda sobre latin1 (UTF-8 o UTF-16).
func ReadCompanies(r io.Reader, latin1 bool) ([]Row, error) {
	var fallback transform.Transformer = transform.Nop
	if latin1 {
		fallback = charmap.ISO8859_1.NewDecoder()
	}
	r = transform.NewReader(r, unicode.BOMOverride(fallback))
	br := bufio.NewReader(r)
	first, err := br.Peek(4096)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	if line, _, _ := strings.Cut(string(first), "\n"); strings.Count(line, ";") > strings.Count(line, ",") {
		cr.Comma = ';'
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("leer CSV: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 && isHeader(rec) {
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, Row{Line: line, Company: dto.CreateCompanyRequest{
			Name:    field(rec, 0),
			TaxID:   field(rec, 1),
			Address: field(rec, 2),
			Phone:   field(rec, 3),
			Email:   field(rec, 4),
		}})
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	switch strings.ToLower(field(rec, 0)) {
	case "name", "nombre":
		return true
	}
	return false
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// CompanyCreator alta de empresas (CompanyUseCase).
type CompanyCreator interface {
	Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
}

// Failure fila que no se pudo crear.
type Failure struct {
	Line int
	Err  error
}

// Result resumen de la importación.
type Result struct {
	Created  int
	Failures []Failure
}

// ImportCompanies crea cada fila; los errores de una fila no detienen el resto.
func ImportCompanies(ctx context.Context, uc CompanyCreator, rows []Row) (Result, error) {
	var res Result
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, err := uc.Create(ctx, row.Company); err != nil {
			res.Failures = append(res.Failures, Failure{Line: row.Line, Err: err})
			continue
		}
		res.Created++
	}
	return res, nil
}
