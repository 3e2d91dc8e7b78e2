// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migration

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/MKhiriev/go-otp-migrate/models"
)

// Field numbers of the public migration format definition.
const (
	fieldPayloadOtpParameters protowire.Number = 1
	fieldPayloadVersion       protowire.Number = 2
	fieldPayloadBatchSize     protowire.Number = 3
	fieldPayloadBatchIndex    protowire.Number = 4
	fieldPayloadBatchID       protowire.Number = 5

	fieldParamsSecret    protowire.Number = 1
	fieldParamsName      protowire.Number = 2
	fieldParamsIssuer    protowire.Number = 3
	fieldParamsAlgorithm protowire.Number = 4
	fieldParamsDigits    protowire.Number = 5
	fieldParamsType      protowire.Number = 6
	fieldParamsCounter   protowire.Number = 7
)

// Declared wire types of the known fields. A known field carrying another
// wire type is malformed.
var (
	payloadWireTypes = map[protowire.Number]protowire.Type{
		fieldPayloadOtpParameters: protowire.BytesType,
		fieldPayloadVersion:       protowire.VarintType,
		fieldPayloadBatchSize:     protowire.VarintType,
		fieldPayloadBatchIndex:    protowire.VarintType,
		fieldPayloadBatchID:       protowire.VarintType,
	}

	paramsWireTypes = map[protowire.Number]protowire.Type{
		fieldParamsSecret:    protowire.BytesType,
		fieldParamsName:      protowire.BytesType,
		fieldParamsIssuer:    protowire.BytesType,
		fieldParamsAlgorithm: protowire.VarintType,
		fieldParamsDigits:    protowire.VarintType,
		fieldParamsType:      protowire.VarintType,
		fieldParamsCounter:   protowire.VarintType,
	}
)

// fieldVisitor consumes the value of the known field num at the start of b.
// It returns the number of bytes consumed or a negative protowire error code.
type fieldVisitor func(num protowire.Number, b []byte) (int, error)

// walkFields reads every tagged field of a message in order. Known fields,
// those listed in wireTypes, are handed to visit and must carry their
// declared wire type. Unknown fields are skipped by the length rule of their
// wire type, so messages from newer exporters still decode.
func walkFields(b []byte, wireTypes map[protowire.Number]protowire.Type, visit fieldVisitor) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		var m int
		declared, known := wireTypes[num]
		switch {
		case !known:
			m = protowire.ConsumeFieldValue(num, typ, b)
		case declared != typ:
			return fmt.Errorf("field %d: unexpected wire type %d", num, typ)
		default:
			var err error
			if m, err = visit(num, b); err != nil {
				return err
			}
		}
		if m < 0 {
			return protowire.ParseError(m)
		}
		b = b[m:]
	}

	return nil
}

// UnmarshalPayload decodes one binary MigrationPayload message.
//
// Unknown fields are skipped. Known fields with an unexpected wire type,
// malformed tags, truncated length-delimited values and invalid varints
// return an error wrapping ErrInvalidBinaryEncoding.
//
// Empty byte strings and empty credential lists decode as nil.
func UnmarshalPayload(b []byte) (models.MigrationPayload, error) {
	var p models.MigrationPayload

	err := walkFields(b, payloadWireTypes, func(num protowire.Number, b []byte) (int, error) {
		if num == fieldPayloadOtpParameters {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			params, err := unmarshalParams(v)
			if err != nil {
				return 0, fmt.Errorf("otp parameters #%d: %w", len(p.OtpParameters), err)
			}
			p.OtpParameters = append(p.OtpParameters, params)
			return n, nil
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return n, nil
		}
		switch num {
		case fieldPayloadVersion:
			p.Version = int32(v)
		case fieldPayloadBatchSize:
			p.BatchSize = int32(v)
		case fieldPayloadBatchIndex:
			p.BatchIndex = int32(v)
		case fieldPayloadBatchID:
			p.BatchID = int32(v)
		}
		return n, nil
	})
	if err != nil {
		return models.MigrationPayload{}, fmt.Errorf("%w: %w", ErrInvalidBinaryEncoding, err)
	}

	return p, nil
}

func unmarshalParams(b []byte) (models.OtpParameters, error) {
	var params models.OtpParameters

	err := walkFields(b, paramsWireTypes, func(num protowire.Number, b []byte) (int, error) {
		switch num {
		case fieldParamsSecret, fieldParamsName, fieldParamsIssuer:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			switch num {
			case fieldParamsSecret:
				params.Secret = append([]byte(nil), v...)
			case fieldParamsName:
				params.Name = string(v)
			case fieldParamsIssuer:
				params.Issuer = string(v)
			}
			return n, nil
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return n, nil
		}
		switch num {
		case fieldParamsAlgorithm:
			params.Algorithm = models.Algorithm(int32(v))
		case fieldParamsDigits:
			params.Digits = models.DigitCount(int32(v))
		case fieldParamsType:
			params.Type = models.OtpType(int32(v))
		case fieldParamsCounter:
			params.Counter = int64(v)
		}
		return n, nil
	})

	return params, err
}

// MarshalPayload encodes p as a binary MigrationPayload message.
//
// Fields are written in ascending tag order and credentials in slice order.
// Zero scalars and empty strings are omitted, as the exporters do.
func MarshalPayload(p models.MigrationPayload) []byte {
	var b []byte
	for _, params := range p.OtpParameters {
		b = protowire.AppendTag(b, fieldPayloadOtpParameters, protowire.BytesType)
		b = protowire.AppendBytes(b, marshalParams(params))
	}
	b = appendVarintField(b, fieldPayloadVersion, int64(p.Version))
	b = appendVarintField(b, fieldPayloadBatchSize, int64(p.BatchSize))
	b = appendVarintField(b, fieldPayloadBatchIndex, int64(p.BatchIndex))
	b = appendVarintField(b, fieldPayloadBatchID, int64(p.BatchID))

	return b
}

func marshalParams(params models.OtpParameters) []byte {
	var b []byte
	b = appendBytesField(b, fieldParamsSecret, params.Secret)
	b = appendBytesField(b, fieldParamsName, []byte(params.Name))
	b = appendBytesField(b, fieldParamsIssuer, []byte(params.Issuer))
	b = appendVarintField(b, fieldParamsAlgorithm, int64(params.Algorithm))
	b = appendVarintField(b, fieldParamsDigits, int64(params.Digits))
	b = appendVarintField(b, fieldParamsType, int64(params.Type))
	b = appendVarintField(b, fieldParamsCounter, params.Counter)

	return b
}

func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendVarintField writes v sign-extended to 64 bits, matching the int32
// and enum encoding of the format.
func appendVarintField(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}
