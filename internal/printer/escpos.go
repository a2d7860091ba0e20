package printer

import (
	"fmt"

	"github.com/kenshaw/escpos"
	"github.com/tarm/serial"

	"github.com/andymccutcheon/return-to-print/internal/errs"
	"github.com/andymccutcheon/return-to-print/internal/model"
)

// SerialPrinter drives an ESC/POS thermal receipt printer over a
// serial port (e.g. /dev/usb/lp0 via a USB-serial adapter).
type SerialPrinter struct {
	portName  string
	baud      int
	recipient string

	port *serial.Port
}

func NewSerialPrinter(portName string, baud int, recipient string) *SerialPrinter {
	return &SerialPrinter{
		portName:  portName,
		baud:      baud,
		recipient: recipient,
	}
}

func (p *SerialPrinter) Connect() error {
	port, err := serial.OpenPort(&serial.Config{Name: p.portName, Baud: p.baud})
	if err != nil {
		return errs.Wrap(errs.CodeDevice, fmt.Sprintf("printer not found on %s", p.portName), err)
	}
	p.port = port
	return nil
}

// Print renders one message as a receipt and cuts the paper. Any write
// failure is a device error; the caller is expected to drop the
// connection and reconnect.
func (p *SerialPrinter) Print(msg model.Message) error {
	if p.port == nil {
		return ErrNotConnected
	}

	e := escpos.New(p.port)
	e.Init()

	var err error
	write := func(s string) {
		if err == nil {
			_, err = e.Write(s)
		}
	}
	label := func(name, value string) {
		e.SetEmphasize(1)
		write(name)
		e.SetEmphasize(0)
		write(value)
	}

	e.SetAlign("center")
	e.SetFontSize(4, 4)
	e.SetEmphasize(1)
	write("RECEIPT\n")
	write("ME\n\n")
	e.SetFontSize(1, 1)
	e.SetEmphasize(0)
	write(divider('=') + "\n\n")

	date, clock := formatTimestamp(msg.CreatedAt)

	e.SetAlign("left")
	label("TO: ", p.recipient+"\n\n")
	label("MSG: ", "#"+shortID(msg.ID)+"\n\n")
	label("DATE: ", date+"\n")
	label("TIME: ", clock+"\n\n")
	label("FROM: ", msg.Name+"\n\n")

	e.SetAlign("center")
	write(divider('-') + "\n\n")

	// Content in large type so it stands out from the metadata.
	e.SetAlign("left")
	e.SetFontSize(3, 3)
	write(msg.Content + "\n\n")

	e.SetFontSize(1, 1)
	e.SetAlign("center")
	write(divider('-') + "\n")
	write("receiptme.xyz\n")
	write(divider('-') + "\n\n\n")

	if err != nil {
		return errs.Wrap(errs.CodeDevice, fmt.Sprintf("write to printer on %s", p.portName), err)
	}

	e.Cut()
	e.End()
	return nil
}

func (p *SerialPrinter) Close() error {
	if p.port == nil {
		return nil
	}
	err := p.port.Close()
	p.port = nil
	return err
}
