package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/opdss/report/storage"
	"github.com/opdss/report/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var fixedNow = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }

func scenario() *Request {
	return &Request{
		Title:    "Listado de residentes",
		FileName: "test",
		Columns:  []Column{{Key: "nombre", Label: "Nombre"}, {Key: "edad", Label: "Edad"}},
		Rows: []Row{
			{"nombre": Text("Ana"), "edad": Number(10)},
			{"nombre": Text("Luis"), "edad": Null()},
		},
	}
}

// documentTexts docx里word/document.xml的全部w:t文本
func documentTexts(t *testing.T, data []byte) ([]string, []string) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	var names []string
	var texts []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		require.NoError(t, err)
		dec := xml.NewDecoder(rc)
		inText := false
		for {
			tok, err := dec.Token()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			switch el := tok.(type) {
			case xml.StartElement:
				inText = el.Name.Local == "t"
			case xml.EndElement:
				inText = false
			case xml.CharData:
				if inText {
					texts = append(texts, string(el))
				}
			}
		}
		_ = rc.Close()
	}
	return names, texts
}

func TestWordScenario(t *testing.T) {
	data, err := ToWord(context.Background(), scenario(), WithNow(fixedNow))
	require.NoError(t, err)

	names, texts := documentTexts(t, data)
	assert.Equal(t, []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/document.xml"}, names)
	for _, want := range []string{"Ana", "10", "Luis", "—", "Total: 2 registros"} {
		assert.Contains(t, texts, want)
	}
	assert.Contains(t, texts, DefaultOrganization)
	assert.Contains(t, texts, "Generado el 17 de octubre de 2026")
}

func TestWordColumnOrder(t *testing.T) {
	req := scenario()
	req.Columns = []Column{{Key: "edad", Label: "Edad"}, {Key: "nombre", Label: "Nombre"}}
	data, err := ToWord(context.Background(), req)
	require.NoError(t, err)

	_, texts := documentTexts(t, data)
	idx := func(s string) int {
		for i, v := range texts {
			if v == s {
				return i
			}
		}
		t.Fatalf("%q not found", s)
		return -1
	}
	assert.Less(t, idx("Edad"), idx("Nombre"))
	assert.Less(t, idx("10"), idx("Ana"))
	assert.Less(t, idx("—"), idx("Luis"))
}

func TestWordFooter(t *testing.T) {
	for n, want := range map[int]string{0: "Total: 0 registros", 1: "Total: 1 registro", 3: "Total: 3 registros"} {
		req := scenario()
		req.Rows = nil
		for i := 0; i < n; i++ {
			req.Rows = append(req.Rows, Row{"nombre": Text("x")})
		}
		data, err := ToWord(context.Background(), req)
		require.NoError(t, err)
		_, texts := documentTexts(t, data)
		assert.Contains(t, texts, want)
	}
}

// 同一份数据在各个格式中的空值和日期文本一致
func TestNormalizationAcrossFormats(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	req := &Request{
		Title:    "Ingresos",
		FileName: "ingresos",
		Columns:  []Column{{Key: "nombre", Label: "Nombre"}, {Key: "ingreso", Label: "Ingreso"}, {Key: "nota", Label: "Nota"}},
		Rows: []Row{
			{"nombre": Text("Ana"), "ingreso": Date(day)},
		},
	}
	opts := []Option{WithNow(fixedNow), WithLibrary(workbook.NewExcelize())}

	wordData, err := ToWord(ctx, req, opts...)
	require.NoError(t, err)
	_, texts := documentTexts(t, wordData)
	assert.Contains(t, texts, "05-03-2026")
	assert.Contains(t, texts, Placeholder)

	html, err := ToPrintable(req, opts...)
	require.NoError(t, err)
	assert.Contains(t, html, "<td>05-03-2026</td>")
	assert.Contains(t, html, "<td>"+Placeholder+"</td>")

	var xlsx bytes.Buffer
	_, err = ToSpreadsheet(ctx, req, &xlsx, opts...)
	require.NoError(t, err)
	fp, err := excelize.OpenReader(&xlsx)
	require.NoError(t, err)
	defer func() {
		_ = fp.Close()
	}()
	rows, err := fp.GetRows("Ingresos")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ana", "05-03-2026", Placeholder}, rows[len(rows)-1])

	var out bytes.Buffer
	_, err = ToCsv(ctx, req, &out, opts...)
	require.NoError(t, err)
	records, err := csv.NewReader(&out).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Nombre", "Ingreso", "Nota"}, {"Ana", "05-03-2026", Placeholder}}, records)
}

func TestPrintable(t *testing.T) {
	req := scenario()
	req.Title = `Informe <"A&B">`
	html, err := ToPrintable(req, WithNow(fixedNow))
	require.NoError(t, err)
	assert.Contains(t, html, "<title>test</title>")
	assert.Contains(t, html, "Informe &lt;&quot;A&amp;B&quot;&gt;")
	assert.Contains(t, html, "Total: 2 registros")
	assert.Contains(t, html, "window.print()")
	assert.NotContains(t, html, `<"A&B">`)
}

func TestSpreadsheetSheet(t *testing.T) {
	req := scenario()
	req.Subtitle = "Octubre"
	req.Organization = "Residencia Los Aromos"
	req.Columns[1].Width = 8
	sheet := NewSpreadsheet(req, WithNow(fixedNow)).Sheet()

	assert.Equal(t, 2, sheet.Columns)
	assert.Equal(t, []float64{workbook.DefaultColWidth, 8}, sheet.ColumnWidths)
	require.Len(t, sheet.Rows, 7)
	assert.Equal(t, []string{"Residencia Los Aromos"}, sheet.Rows[0].Cells)
	assert.Equal(t, []string{"Listado de residentes"}, sheet.Rows[1].Cells)
	assert.Equal(t, []string{"Octubre"}, sheet.Rows[2].Cells)
	assert.Equal(t, []string{"Generado el 17 de octubre de 2026"}, sheet.Rows[3].Cells)
	for _, r := range sheet.Rows[:4] {
		assert.True(t, r.Merge)
	}
	assert.Equal(t, []string{"Nombre", "Edad"}, sheet.Rows[4].Cells)
	assert.False(t, sheet.Rows[4].Merge)
	assert.Equal(t, []string{"Luis", Placeholder}, sheet.Rows[6].Cells)

	req.Subtitle = ""
	assert.Len(t, NewSpreadsheet(req).Sheet().Rows, 6)
}

func TestSpreadsheetLibraryUnavailable(t *testing.T) {
	loader := workbook.NewLoader(nil, &workbook.LocalSource{Disabled: true}, workbook.NewRemoteSource("", 0))
	var out bytes.Buffer
	_, err := ToSpreadsheet(context.Background(), scenario(), &out, WithLoader(loader))
	require.Error(t, err)
	assert.True(t, Error.Has(err))
	assert.Zero(t, out.Len())
}

func TestMaxRows(t *testing.T) {
	req := scenario()
	_, err := ToWord(context.Background(), req, WithMaxRows(1))
	assert.ErrorIs(t, err, ErrMaximumLimit)

	_, err = ToWord(context.Background(), req, WithMaxRows(2))
	assert.NoError(t, err)
}

func TestInvalidRequest(t *testing.T) {
	req := scenario()
	req.FileName = "test.docx"
	_, err := ToWord(context.Background(), req)
	assert.True(t, ErrInvalidRequest.Has(err))

	_, err = New(Format("odt"), scenario())
	assert.True(t, ErrInvalidRequest.Has(err))
}

func TestCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ToWord(ctx, scenario())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	path, err := NewWord(scenario(), WithDir(dir)).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "test.docx"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	names, _ := documentTexts(t, data)
	assert.Len(t, names, 4)

	path, err = NewCsv(scenario(), WithDir(dir), WithFilename("otro")).Export(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "otro.csv"), path)
}

func TestExportToStorage(t *testing.T) {
	root := t.TempDir()
	fs, err := storage.NewLocal(storage.LocalConfig{Root: root, Endpoint: "http://files.local"})
	require.NoError(t, err)

	url, err := ToStorage(context.Background(), FormatCsv, scenario(), fs, WithNow(fixedNow))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://files.local/test_20261017_093000_"), url)
	require.True(t, strings.HasSuffix(url, ".csv"), url)

	key := strings.TrimPrefix(url, "http://files.local/")
	data, err := fs.Get(context.Background(), key)
	require.NoError(t, err)
	assert.Equal(t, "Nombre,Edad\nAna,10\nLuis,—\n", string(data))
}

func TestExportToStorageRenderError(t *testing.T) {
	fs, err := storage.NewLocal(storage.LocalConfig{Root: t.TempDir()})
	require.NoError(t, err)
	loader := workbook.NewLoader(nil, &workbook.LocalSource{Disabled: true})

	_, err = ToStorage(context.Background(), FormatSpreadsheet, scenario(), fs, WithLoader(loader))
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	res, err := Run(context.Background(), FormatWord, scenario())
	require.NoError(t, err)
	assert.Equal(t, "test.docx", res.FileName)
	assert.Equal(t, WordMimeType, res.MimeType)
	assert.Equal(t, 2, res.Rows)
	assert.Equal(t, "PK", string(res.Data[:2]))

	res, err = Run(context.Background(), FormatPrint, scenario())
	require.NoError(t, err)
	assert.Equal(t, "test.html", res.FileName)
	assert.Equal(t, HTMLMimeType, res.MimeType)
}
