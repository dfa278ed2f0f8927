// Command mudlink-echo runs two link engines against each other over an
// in-memory loopback transport: one sends a line of text every interval,
// the other echoes whatever it receives back. It exists to exercise the
// engine end to end without any real UART hardware.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jakeread/mudlink/clock"
	"github.com/jakeread/mudlink/driver/stub"
	"github.com/jakeread/mudlink/link"
	"github.com/jakeread/mudlink/logging"
)

func main() {
	baudRate := flag.Uint("baud", 115200, "simulated link baud rate")
	messages := flag.Int("messages", 10, "number of messages the sender emits before exiting")
	interval := flag.Duration("interval", 200*time.Millisecond, "how often the sender attempts a new send")
	verbose := flag.Bool("verbose", false, "log at debug level")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	logger := logging.Logrus(log)

	sender, receiver, wire, err := newLoopback(uint32(*baudRate), logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "mudlink-echo:", err)
		os.Exit(1)
	}

	sender.Begin()
	receiver.Begin()

	sent := 0
	lastSend := time.Now().Add(-*interval)
	var readBuf [link.MaxMessageSize]byte

	for sent < *messages || !sender.ClearToSend() {
		sender.Tick()
		receiver.Tick()
		wire.Pump()

		if sent < *messages && sender.ClearToSend() && time.Since(lastSend) >= *interval {
			msg := fmt.Sprintf("ping %d", sent)
			sender.Send([]byte(msg))
			log.WithField("message", msg).Info("sent")
			sent++
			lastSend = time.Now()
		}

		if receiver.ClearToRead() {
			n := receiver.Read(readBuf[:], len(readBuf))
			log.WithField("message", string(readBuf[:n])).Info("echoed back")
			receiver.Send(readBuf[:n])
		}

		if sender.ClearToRead() {
			n := sender.Read(readBuf[:], len(readBuf))
			log.WithField("message", string(readBuf[:n])).Info("received echo")
		}
	}

	stats := sender.Stats()
	log.WithFields(logrus.Fields{
		"tx_ok":            stats.TxOk,
		"tx_fail":          stats.TxFail,
		"tx_total_retries": stats.TxTotalRetries,
		"avg_retry_count":  stats.AvgRetryCount,
	}).Info("sender stats")
}

func newLoopback(baudRate uint32, logger logging.Logger) (*link.Engine, *link.Engine, *stub.Link, error) {
	senderDriver := stub.New()
	receiverDriver := stub.New()
	wire := stub.Connect(senderDriver, receiverDriver)

	sender, err := link.New(senderDriver, clock.NewSystem(), baudRate, link.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}

	receiver, err := link.New(receiverDriver, clock.NewSystem(), baudRate, link.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, err
	}

	return sender, receiver, wire, nil
}
