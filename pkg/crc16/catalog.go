// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Kaz Walker, Thermoquad

package crc16

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	sigurn "github.com/sigurn/crc16"
)

// ErrUnknownVariant is returned by Lookup for names not in the catalog.
var ErrUnknownVariant = errors.New("crc16: unknown variant")

// Predefined parameter sets, with check values from the reveng catalogue.
var (
	CCITTFalse = sigurn.CRC16_CCITT_FALSE
	AugCCITT   = sigurn.CRC16_AUG_CCITT
	Genibus    = sigurn.CRC16_GENIBUS
	XModem     = sigurn.CRC16_XMODEM
	Kermit     = sigurn.CRC16_KERMIT
	X25        = sigurn.CRC16_X_25
	MCRF4XX    = sigurn.CRC16_MCRF4XX
	ARC        = sigurn.CRC16_ARC
	Modbus     = sigurn.CRC16_MODBUS
)

var catalog = []Params{CCITTFalse, AugCCITT, Genibus, XModem, Kermit, X25, MCRF4XX, ARC, Modbus}

// Extra names accepted by Lookup, keyed by normalized form. Plain "CCITT" is
// KERMIT, as in reveng; the default variant is "CCITT-FALSE".
var aliases = map[string]string{
	"ibm3740":    CCITTFalse.Name,
	"autosar":    CCITTFalse.Name,
	"spifujitsu": AugCCITT.Name,
	"zmodem":     XModem.Name,
	"acorn":      XModem.Name,
	"lte":        XModem.Name,
	"ccitt":      Kermit.Name,
	"ccitttrue":  Kermit.Name,
	"ibmsdlc":    X25.Name,
	"hdlc":       X25.Name,
	"isohdlc":    X25.Name,
	"lha":        ARC.Name,
	"ibm":        ARC.Name,
}

// Variants returns the catalog of predefined parameter sets, default first.
func Variants() []Params {
	out := make([]Params, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by name. Matching ignores case, separators and
// a leading "CRC-16", so "x25", "X-25" and "crc-16/x-25" are equal.
func Lookup(name string) (Params, error) {
	key := normalize(name)
	if full, ok := aliases[key]; ok {
		key = normalize(full)
	}
	for _, p := range catalog {
		if normalize(p.Name) == key {
			return p, nil
		}
	}
	return Params{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

func normalize(name string) string {
	s := strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', '/', ' ', '.':
			return -1
		}
		return unicode.ToLower(r)
	}, name)
	return strings.TrimPrefix(s, "crc16")
}
