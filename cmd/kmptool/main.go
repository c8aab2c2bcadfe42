// kmptool is a command line client for KMP meters. It sends a single
// request over the serial line (or a ser2net socket bridge) and prints the
// decoded response.
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gertvdijk/gokmp/pkg/client"
	"github.com/gertvdijk/gokmp/pkg/config"
	"github.com/gertvdijk/gokmp/pkg/kmp"
	"github.com/gertvdijk/gokmp/pkg/messages"
	"github.com/gertvdijk/gokmp/pkg/transport"
	"github.com/gertvdijk/gokmp/pkg/types"
)

const usageText = `Usage: kmptool [flags] <command>

Commands:
  get-serial            read the meter serial number
  get-type              read the meter type and software revision
  get-register          read register values (repeat -register)

Flags:
`

// registerList collects repeated -register flags. Values parse as decimal
// or as hex with an 0x prefix.
type registerList []uint16

func (r *registerList) String() string {
	parts := make([]string, len(*r))
	for i, id := range *r {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, ",")
}

func (r *registerList) Set(value string) error {
	id, err := strconv.ParseUint(value, 0, 16)
	if err != nil {
		return fmt.Errorf("invalid register ID %q: %w", value, err)
	}
	*r = append(*r, uint16(id))
	return nil
}

func main() {
	if err := config.LoadToolConfig(); err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.ActiveToolConfig

	var registers registerList
	device := flag.String("device", cfg.SerialDevice,
		"serial device path, or socket://host:port")
	address := flag.String("address", fmt.Sprintf("0x%02X", cfg.DestinationAddress),
		"destination address (0x3F heat meter, 0x7F logger top, 0xBF logger base)")
	timeout := flag.Uint("timeout", cfg.ReadTimeoutSeconds,
		"read timeout in seconds")
	jsonOutput := flag.Bool("json", false, "print the response as JSON")
	verbose := flag.Bool("v", false, "verbose logging")
	debug := flag.Bool("vv", false, "debug logging, including raw frames")
	flag.Var(&registers, "register",
		"register ID to read, decimal or 0x-prefixed hex (repeatable)")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usageText)
		flag.PrintDefaults()
	}
	flag.Parse()

	switch {
	case *debug:
		logrus.SetLevel(logrus.DebugLevel)
	case *verbose:
		logrus.SetLevel(logrus.InfoLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	destination, err := strconv.ParseUint(*address, 0, 8)
	if err != nil || !kmp.KnownDestination(byte(destination)) {
		logrus.Errorf("Invalid destination address %q", *address)
		os.Exit(2)
	}

	request, err := buildRequest(command, registers)
	if err != nil {
		logrus.Error(err)
		flag.Usage()
		os.Exit(2)
	}

	conn, err := transport.Open(*device)
	if err != nil {
		logrus.Errorf("Failed to open %s: %v", *device, err)
		os.Exit(1)
	}
	defer conn.Close()

	kmpClient := client.NewWithDestination(conn, byte(destination))
	kmpClient.SetReadTimeout(time.Duration(*timeout) * time.Second)

	response, err := kmpClient.SendRequest(request)
	if err != nil {
		logrus.Errorf("Request failed: %v", err)
		os.Exit(1)
	}

	if err := printResponse(response, *jsonOutput); err != nil {
		logrus.Errorf("Failed to print response: %v", err)
		os.Exit(1)
	}
}

func buildRequest(command string, registers registerList) (messages.Request, error) {
	switch command {
	case "get-serial":
		return messages.GetSerialRequest{}, nil
	case "get-type":
		return messages.GetTypeRequest{}, nil
	case "get-register":
		if len(registers) == 0 {
			return nil, fmt.Errorf("get-register requires at least one -register flag")
		}
		return messages.GetRegisterRequest{Registers: registers}, nil
	default:
		return nil, fmt.Errorf("unknown command %q", command)
	}
}

func printResponse(response messages.Response, jsonOutput bool) error {
	switch resp := response.(type) {
	case *messages.GetSerialResponse:
		if jsonOutput {
			return printJSON(map[string]string{"serial": resp.Serial})
		}
		fmt.Println(resp.Serial)

	case *messages.GetTypeResponse:
		meterType := hex.EncodeToString(resp.MeterTypeBytes)
		if jsonOutput {
			return printJSON(map[string]string{
				"meter_type":        meterType,
				"software_revision": resp.SoftwareRevision,
			})
		}
		fmt.Printf("Meter type: 0x%s\n", meterType)
		if resp.SoftwareRevision != "" {
			fmt.Printf("Software revision: %s\n", resp.SoftwareRevision)
		} else {
			fmt.Println("Software revision: not reported (try register 1005)")
		}

	case *messages.GetRegisterResponse:
		types.WarnRegisterUnknowns(resp.Registers)
		reading := &types.MeterReading{
			Timestamp: time.Now().Format(time.RFC3339),
		}
		for _, register := range resp.Registers {
			decoded, err := types.FromRegisterData(register)
			if err != nil {
				logrus.Warnf("Skipping register %d: %v", register.ID, err)
				continue
			}
			reading.Registers = append(reading.Registers, decoded)
		}
		if jsonOutput {
			return printJSON(reading)
		}
		if len(reading.Registers) == 0 {
			fmt.Println("No registers in response; the meter skips IDs it does not support.")
		}
		for _, register := range reading.Registers {
			fmt.Println(register.PrettyLine())
		}

	default:
		return fmt.Errorf("no printer for response type %T", response)
	}
	return nil
}

func printJSON(value any) error {
	encoded, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(encoded))
	return nil
}
