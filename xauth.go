package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
)

// AuthFamily identifies the address family an Xauthority record was
// recorded under (the "family" field of each entry), per Xau's on-disk
// format.
type AuthFamily uint16

const (
	AuthFamilyInternet  AuthFamily = 0
	AuthFamilyDECnet    AuthFamily = 1
	AuthFamilyChaos     AuthFamily = 2
	AuthFamilyLocal     AuthFamily = 256
	AuthFamilyWild      AuthFamily = 65535
	AuthFamilyNetname   AuthFamily = 254
	AuthFamilyKrb5      AuthFamily = 253
)

// AuthRecord is one entry of a parsed .Xauthority file: family, address,
// display number, auth scheme name, and opaque auth data.
type AuthRecord struct {
	Family  AuthFamily
	Address []byte
	Display []byte
	Name    []byte
	Data    []byte
}

// ReadAuthority parses every record out of raw, matching
// just_x11/src/xauth.rs's XAuth::from_bytes (which loops over the whole
// file, unlike the single-record variant kept in a sibling crate of the
// same workspace) rather than stopping at the first record.
func ReadAuthority(raw []byte) ([]AuthRecord, error) {
	var records []AuthRecord
	for len(raw) > 0 {
		rec, rest, err := readOneAuthRecord(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
		raw = rest
	}
	return records, nil
}

func readOneAuthRecord(raw []byte) (AuthRecord, []byte, error) {
	family, raw, err := readAuthU16(raw)
	if err != nil {
		return AuthRecord{}, nil, err
	}
	address, raw, err := readAuthField(raw)
	if err != nil {
		return AuthRecord{}, nil, err
	}
	display, raw, err := readAuthField(raw)
	if err != nil {
		return AuthRecord{}, nil, err
	}
	name, raw, err := readAuthField(raw)
	if err != nil {
		return AuthRecord{}, nil, err
	}
	data, raw, err := readAuthField(raw)
	if err != nil {
		return AuthRecord{}, nil, err
	}
	return AuthRecord{
		Family:  AuthFamily(family),
		Address: address,
		Display: display,
		Name:    name,
		Data:    data,
	}, raw, nil
}

// readAuthU16 and readAuthField decode the big-endian
// length-prefixed fields Xauthority uses (distinct from the
// little-endian core wire protocol itself).
func readAuthU16(raw []byte) (uint16, []byte, error) {
	if len(raw) < 2 {
		return 0, nil, fmt.Errorf("x11: truncated xauthority record: %w", ErrInvalidResponse)
	}
	return binary.BigEndian.Uint16(raw), raw[2:], nil
}

func readAuthField(raw []byte) ([]byte, []byte, error) {
	n, raw, err := readAuthU16(raw)
	if err != nil {
		return nil, nil, err
	}
	if len(raw) < int(n) {
		return nil, nil, fmt.Errorf("x11: truncated xauthority field: %w", ErrInvalidResponse)
	}
	field := make([]byte, n)
	copy(field, raw[:n])
	return field, raw[n:], nil
}

// ErrInvalidResponse reports a malformed response where the wire
// contract promised a well-formed one (truncated xauthority records,
// truncated ConnectionSetup bodies).
var ErrInvalidResponse = fmt.Errorf("x11: invalid response")

// xauthorityPath resolves the file ReadAuthorityFile should read:
// $XAUTHORITY if set, else $HOME/.Xauthority, matching
// just_x11/src/xauth.rs's from_env/home_path.
func xauthorityPath() (string, error) {
	if p, ok := os.LookupEnv("XAUTHORITY"); ok && p != "" {
		return p, nil
	}
	home, ok := os.LookupEnv("HOME")
	if !ok || home == "" {
		return "", fmt.Errorf("x11: HOME not set: %w", ErrNoDisplay)
	}
	return filepath.Join(home, ".Xauthority"), nil
}

// ReadAuthorityFile reads and parses the Xauthority file resolved by
// xauthorityPath. A missing file is not an error: callers fall back to
// connecting without authentication data.
func ReadAuthorityFile() ([]AuthRecord, error) {
	path, err := xauthorityPath()
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return ReadAuthority(raw)
}

// MatchAuthority returns the first record matching the given display
// address and sequence number, per spec.md §4.4 step 2, scanning the
// full record set ReadAuthorityFile returns (the [SUPPLEMENT] multi-
// record behavior) rather than assuming the first record on disk
// matches.
func MatchAuthority(records []AuthRecord, hostname string, displaySeq int) (AuthRecord, bool) {
	displayStr := fmt.Sprintf("%d", displaySeq)
	for _, r := range records {
		if string(r.Display) != displayStr {
			continue
		}
		switch r.Family {
		case AuthFamilyLocal, AuthFamilyWild:
			return r, true
		default:
			if string(r.Address) == hostname {
				return r, true
			}
		}
	}
	return AuthRecord{}, false
}
