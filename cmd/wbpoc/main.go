// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command wbpoc runs the three demonstration scenarios of the white-box
// cipher proof of concept: a round-trip encrypt/decrypt check, a
// save-then-reload of the key tables, and the hash-preimage signature
// probe. Each scenario runs exactly once per invocation.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/dschelkunov/wbpoc/internal/chaos"
	"github.com/dschelkunov/wbpoc/internal/keystore"
	"github.com/dschelkunov/wbpoc/internal/signer"
	"github.com/dschelkunov/wbpoc/internal/wbox"
)

// VERSION is set at release time; SELFBUILD marks a local build.
var VERSION = "SELFBUILD"

const defaultMessage = "This is fast white-box cipher!!"

func main() {
	myApp := cli.NewApp()
	myApp.Name = "wbpoc"
	myApp.Usage = "white-box cipher key generation and evaluation demo"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "message,m",
			Value: defaultMessage,
			Usage: "message to carry through the encrypt/decrypt and signature scenarios",
		},
		cli.StringFlag{
			Name:  "publickey",
			Value: "wbpoc.pub",
			Usage: "path used to save/reload the public table set",
		},
		cli.StringFlag{
			Name:  "privatekey",
			Value: "wbpoc.key",
			Usage: "path used to save/reload the private table set",
		},
		cli.BoolFlag{
			Name:  "quiet",
			Usage: "suppress informational logging, print only the scenario results",
		},
		cli.StringFlag{
			Name:  "c",
			Usage: "config from JSON file, which will override command line arguments",
		},
	}
	myApp.Action = func(c *cli.Context) error {
		config := Config{}
		config.Message = c.String("message")
		config.PublicKey = c.String("publickey")
		config.PrivateKey = c.String("privatekey")
		config.Quiet = c.Bool("quiet")

		if c.String("c") != "" {
			err := parseJSONConfig(&config, c.String("c"))
			checkError(err)
		}

		if !config.Quiet {
			log.Println("version:", VERSION)
			log.Println("message:", config.Message)
			log.Println("publickey:", config.PublicKey)
			log.Println("privatekey:", config.PrivateKey)
		}

		runScenario("SIGNATURE", func() error { return testSign([]byte(config.Message)) })
		runScenario("ENCR_DECR", func() error { return testEncrDecr([]byte(config.Message)) })
		runScenario("ENCR_DECR_SAVE_LOAD", func() error {
			return testEncrDecrSaveLoad([]byte(config.Message), config.PublicKey, config.PrivateKey)
		})

		return nil
	}
	myApp.Run(os.Args)
}

// runScenario prints a colored OK/ERROR line for name depending on whether
// run succeeds. It never aborts the process: every scenario runs and a
// reported ERROR line never changes the exit code.
func runScenario(name string, run func() error) {
	if err := run(); err != nil {
		color.Red("%s ERROR!!! %v", name, err)
		return
	}
	color.Green("%s OK!!!", name)
}

func checkError(err error) {
	if err != nil {
		log.Printf("%+v\n", err)
		os.Exit(-1)
	}
}

// newKeyPair draws a fresh chaotic generator and compiles a full
// encryption/decryption key pair from it.
func newKeyPair() (*wbox.EncryptionKey, *wbox.DecryptionKey, error) {
	gen, err := chaos.NewGenerator()
	if err != nil {
		return nil, nil, errors.Wrap(err, "seeding chaotic generator")
	}
	enc, err := wbox.GenerateEncryptionKey(gen)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating encryption key")
	}
	dec, err := wbox.GenerateDecryptionKey(enc)
	if err != nil {
		return nil, nil, errors.Wrap(err, "generating decryption key")
	}
	return enc, dec, nil
}

// testEncrDecr is the round-trip scenario: a fixed 16-byte block is
// encrypted then decrypted, and the result must match the input.
func testEncrDecr(msg []byte) error {
	enc, dec, err := newKeyPair()
	if err != nil {
		return err
	}

	var plaintext [wbox.PlaintextLen]byte
	copy(plaintext[:], msg)

	var cipher [wbox.MixedRecord]byte
	enc.Encrypt(&cipher, &plaintext)

	var got [wbox.PlaintextLen]byte
	dec.Decrypt(&got, &cipher)

	if got != plaintext {
		return errors.Errorf("decrypt(encrypt(p)) = %x, want %x", got, plaintext)
	}
	return nil
}

// testEncrDecrSaveLoad generates a key pair, saves both table sets to disk,
// reloads them, and checks the reloaded keys still round-trip the message.
func testEncrDecrSaveLoad(msg []byte, pubPath, privPath string) error {
	enc, dec, err := newKeyPair()
	if err != nil {
		return err
	}

	if err := keystore.SavePublicKey(pubPath, enc.CombinedTables()); err != nil {
		return errors.Wrap(err, "saving public key")
	}
	if err := keystore.SavePrivateKey(privPath, dec.InverseTables2(), dec.InverseTables1(), dec.FinalTables()); err != nil {
		return errors.Wrap(err, "saving private key")
	}
	defer os.Remove(pubPath)
	defer os.Remove(privPath)

	ct, err := keystore.LoadPublicKey(pubPath)
	if err != nil {
		return errors.Wrap(err, "loading public key")
	}
	it2, it1, ft, err := keystore.LoadPrivateKey(privPath)
	if err != nil {
		return errors.Wrap(err, "loading private key")
	}

	loadedEnc := wbox.NewEncryptionKeyFromTables(ct)
	loadedDec := wbox.NewDecryptionKeyFromTables(it2, it1, ft)

	var plaintext [wbox.PlaintextLen]byte
	copy(plaintext[:], msg)

	var cipher [wbox.MixedRecord]byte
	loadedEnc.Encrypt(&cipher, &plaintext)

	var got [wbox.PlaintextLen]byte
	loadedDec.Decrypt(&got, &cipher)

	if got != plaintext {
		return errors.Errorf("reloaded keys: decrypt(encrypt(p)) = %x, want %x", got, plaintext)
	}
	return nil
}

// testSign is the hash-preimage signature probe: it searches for a counter
// that makes sha256(msg||counter) decrypt-then-re-encrypt back to itself.
func testSign(msg []byte) error {
	enc, dec, err := newKeyPair()
	if err != nil {
		return err
	}

	counter, ok := signer.Sign(enc, dec, msg)
	if !ok {
		return errors.Errorf("no preimage found in %d counters", signer.MaxCounter)
	}
	fmt.Printf("  signature counter: %d\n", counter)
	return nil
}
