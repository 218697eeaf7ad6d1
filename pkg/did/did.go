/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package did parses and validates did:kilt URIs and DID URLs.
package did

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/trustbloc/kilt-core-go/pkg/ss58"
)

// Method is the DID method name.
const Method = "kilt"

// DID variants.
const (
	// LightType identifies self-certifying DIDs derivable from the URI alone.
	LightType = "light"

	// FullType identifies DIDs anchored in on-chain storage.
	FullType = "full"
)

// SupportedVersion is the only did:kilt grammar version in use.
const SupportedVersion = 1

// ErrInvalidDidFormat is returned when a string does not match the did:kilt
// grammar.
var ErrInvalidDidFormat = errors.New("not a valid KILT DID")

const base58Charset = `[1-9a-km-zA-HJ-NP-Z]`

var (
	fullDidRegex = regexp.MustCompile(
		`^did:kilt:(?:v(?P<version>\d+):)?full:(?P<address>` + base58Charset + `{46,50})(?P<fragment>#[^#]*)?$`)

	lightDidRegex = regexp.MustCompile(
		`^did:kilt:(?:v(?P<version>\d+):)?light:(?P<authKeyType>[0-9a-f]{2})(?P<address>` + base58Charset +
			`{46,50})(?::(?P<details>z` + base58Charset + `+))?(?P<fragment>#[^#]*)?$`)
)

// Parsed holds the components of a did:kilt URI or DID URL.
type Parsed struct {
	// Did is the URI without the fragment.
	Did string

	// Type is LightType or FullType.
	Type string

	// Identifier is the method-specific identifier. For light DIDs it
	// includes the leading key type encoding.
	Identifier string

	// Address is the SS58-encoded identifier without the key type encoding.
	Address string

	// Version is the grammar version (defaults to SupportedVersion).
	Version uint

	// Fragment is the DID URL fragment without the leading '#', if any.
	Fragment string

	// AuthKeyTypeEncoding is the two-digit key type code (light DIDs only).
	AuthKeyTypeEncoding string

	// EncodedDetails is the encoded auxiliary data blob (light DIDs only).
	EncodedDetails string
}

// Parse validates a DID or DID URL string against the did:kilt grammar and
// splits it into its components.
func Parse(didUri string) (*Parsed, error) {
	if match := fullDidRegex.FindStringSubmatch(didUri); match != nil {
		return newParsed(fullDidRegex, match, FullType)
	}

	if match := lightDidRegex.FindStringSubmatch(didUri); match != nil {
		return newParsed(lightDidRegex, match, LightType)
	}

	return nil, errors.Wrap(ErrInvalidDidFormat, didUri)
}

// Validate returns an error if the string is not a valid did:kilt URI or DID
// URL.
func Validate(didUri string) error {
	_, err := Parse(didUri)

	return err
}

// FullUri assembles the full DID URI for an on-chain identifier.
func FullUri(address string) string {
	return fmt.Sprintf("did:%s:%s:%s", Method, FullType, address)
}

// LightUri assembles the light DID URI from its parts. EncodedDetails may be
// empty.
func LightUri(authKeyTypeEncoding, address, encodedDetails string) string {
	uri := fmt.Sprintf("did:%s:%s:%s%s", Method, LightType, authKeyTypeEncoding, address)
	if encodedDetails != "" {
		uri += ":" + encodedDetails
	}

	return uri
}

func newParsed(re *regexp.Regexp, match []string, didType string) (*Parsed, error) {
	groups := make(map[string]string)

	for i, name := range re.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}

	version := uint(SupportedVersion)

	if groups["version"] != "" {
		parsed, err := strconv.ParseUint(groups["version"], 10, 32)
		if err != nil || parsed != SupportedVersion {
			return nil, errors.Wrapf(ErrInvalidDidFormat, "unsupported version: %s", groups["version"])
		}

		version = uint(parsed)
	}

	address := groups["address"]
	if err := ss58.Validate(address); err != nil {
		return nil, errors.Wrapf(ErrInvalidDidFormat, "invalid identifier: %s", err.Error())
	}

	identifier := address
	if didType == LightType {
		identifier = groups["authKeyType"] + address
	}

	uri := match[0]
	if groups["fragment"] != "" {
		uri = strings.TrimSuffix(uri, groups["fragment"])
	}

	return &Parsed{
		Did:                 uri,
		Type:                didType,
		Identifier:          identifier,
		Address:             address,
		Version:             version,
		Fragment:            strings.TrimPrefix(groups["fragment"], "#"),
		AuthKeyTypeEncoding: groups["authKeyType"],
		EncodedDetails:      groups["details"],
	}, nil
}
