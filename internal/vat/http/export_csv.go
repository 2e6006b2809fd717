package http

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/vatlens/vatlens/internal/vat"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeComment(line string) error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	if _, err := s.buf.WriteString(line); err != nil {
		return err
	}
	return nil
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

func (s *csvStreamer) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return nil
}

func writeSummaryCSV(w io.Writer, summary vat.VatPeriodSummary) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment(fmt.Sprintf("# VAT Summary | Period: %s", summary.Period)); err != nil {
		return err
	}
	if err := streamer.writeRow([]string{"METRIC", "AMOUNT (NGN)"}); err != nil {
		return err
	}
	rows := [][]string{
		{"Output VAT (Sales)", formatDecimal(summary.OutputVat)},
		{"Claimable Input VAT (Fully)", formatDecimal(summary.ClaimableInputVat)},
		{"Claimable Input VAT (Partial)", formatDecimal(summary.PartiallyClaimableInputVat)},
		{"Total Claimable Input VAT", formatDecimal(summary.ClaimableInputVat + summary.PartiallyClaimableInputVat)},
		{"Not Claimable Input VAT", formatDecimal(summary.NotClaimableInputVat)},
		{"Review Required Input VAT", formatDecimal(summary.ReviewRequiredInputVat)},
		{"VAT PAYABLE", formatDecimal(summary.VatPayable)},
		{"Excluded invoices", fmt.Sprintf("%d", summary.ExcludedFromCalculation)},
	}
	for _, row := range rows {
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writeSalesCSV(w io.Writer, period string, invoices []vat.SalesInvoice) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment(fmt.Sprintf("# Sales Invoices | Period: %s", period)); err != nil {
		return err
	}
	header := []string{
		"Invoice No", "Customer", "Customer TIN", "Invoice Date", "IRN",
		"Fiscalization Status", "Payment Status", "Net Amount", "VAT Amount",
		"Total", "Included in VAT Calc",
	}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, inv := range invoices {
		included := "NO"
		if inv.FiscalizationStatus == vat.FiscalizationValidated {
			included = "YES"
		}
		row := []string{
			inv.InvoiceNumber,
			inv.CustomerName,
			inv.CustomerTIN,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.IRN,
			string(inv.FiscalizationStatus),
			string(inv.PaymentStatus),
			formatDecimal(inv.NetAmount),
			formatDecimal(inv.VatAmount),
			formatDecimal(inv.Total),
			included,
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
	}
	return streamer.Close()
}

func writePurchasesCSV(w io.Writer, period string, invoices []vat.PurchaseInvoice) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeComment(fmt.Sprintf("# Purchase Invoices | Period: %s", period)); err != nil {
		return err
	}
	header := []string{
		"Invoice No", "Supplier", "Supplier TIN", "Invoice Date", "IRN",
		"Fiscalization Status", "Overall Claimability", "Total VAT Paid",
		"Claimable VAT", "Excluded from Calc",
	}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, inv := range invoices {
		excluded := "NO"
		if inv.FiscalizationStatus != vat.FiscalizationValidated {
			excluded = "YES"
		}
		row := []string{
			inv.InvoiceNumber,
			inv.SupplierName,
			inv.SupplierTIN,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.IRN,
			string(inv.FiscalizationStatus),
			string(inv.OverallClaimableStatus),
			formatDecimal(inv.VatAmount),
			formatDecimal(inv.ClaimableVatTotal()),
			excluded,
		}
		if err := streamer.writeRow(row); err != nil {
			return err
		}
		// One indented sub-row per line carrying the per-line determination.
		for _, li := range inv.LineItems {
			sub := []string{
				"  → " + li.Description,
				"", "", "", "",
				"",
				string(li.ClaimableStatus),
				formatDecimal(li.VatAmount),
				formatDecimal(li.ClaimableVatAmount),
				string(li.ReasonCode),
			}
			if err := streamer.writeRow(sub); err != nil {
				return err
			}
		}
	}
	return streamer.Close()
}

func formatDecimal(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
