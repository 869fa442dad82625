package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp csv: %v", err)
	}
	return path
}

func TestConvertCmd_CSVToExcel(t *testing.T) {
	in := writeTempCSV(t, "Serial,Height (mm),Width (mm),Category\nW-101,1000,600,Normal\nW-102,800,400,Louver\n")
	out := filepath.Join(t.TempDir(), "sheet.xlsx")

	cmd := newConvertCmd()
	cmd.SetArgs([]string{in, "-o", out, "--title", "Site A", "--owner", "R. Sharma"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(stdout.String(), "2 rows") {
		t.Errorf("stdout = %q, want row count", stdout.String())
	}

	f, err := excelize.OpenFile(out)
	if err != nil {
		t.Fatalf("output is not a valid xlsx: %v", err)
	}
	defer f.Close()
	sheet := f.GetSheetName(0)
	if got, _ := f.GetCellValue(sheet, "A1"); got != "Site A" {
		t.Errorf("A1 = %q, want %q", got, "Site A")
	}
	if got, _ := f.GetCellValue(sheet, "B7"); got != "W-101" {
		t.Errorf("B7 = %q, want %q", got, "W-101")
	}
	// Louver row has no frame dimensions.
	if got, _ := f.GetCellValue(sheet, "F8"); got != "" {
		t.Errorf("F8 = %q, want empty", got)
	}
}

func TestConvertCmd_CSVToPDF(t *testing.T) {
	in := writeTempCSV(t, "Serial,Height (mm),Width (mm),Category\nW-101,1000,600,Normal\n")
	out := filepath.Join(t.TempDir(), "sheet.pdf")

	cmd := newConvertCmd()
	cmd.SetArgs([]string{in, "-o", out})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestConvertCmd_WarningsGoToStderr(t *testing.T) {
	in := writeTempCSV(t, "Serial,Height (mm),Width (mm),Category\nW-101,abc,600,Normal\n")
	out := filepath.Join(t.TempDir(), "sheet.xlsx")

	cmd := newConvertCmd()
	cmd.SetArgs([]string{in, "-o", out})
	var stderr bytes.Buffer
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&stderr)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("convert failed: %v", err)
	}
	if !strings.Contains(stderr.String(), "Height (mm)") {
		t.Errorf("stderr = %q, want a height warning", stderr.String())
	}
}

func TestConvertCmd_UnsupportedExtension(t *testing.T) {
	in := writeTempCSV(t, "Serial,Height (mm),Width (mm),Category\nW-101,1000,600,Normal\n")

	cmd := newConvertCmd()
	cmd.SetArgs([]string{in, "-o", filepath.Join(t.TempDir(), "sheet.docx")})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for unsupported output extension")
	}
}
