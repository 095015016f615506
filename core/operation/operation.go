// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package operation

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/juju/errors"

	"github.com/juju/opcore/core/confignode"
)

// Operation names.
const (
	Add               = "add"
	Remove            = "remove"
	Deploy            = "deploy"
	Undeploy          = "undeploy"
	ReplaceDeployment = "replace-deployment"
	WriteAttribute    = "write-attribute"
	UndefineAttribute = "undefine-attribute"
)

// Parameter names.
const (
	Name        = "name"
	RuntimeName = "runtime-name"
	Hash        = "hash"
	Enabled     = "enabled"
	ToReplace   = "to-replace"
	Value       = "value"
)

// ErrRequestMalformed classifies requests missing a required parameter
// or carrying one of the wrong type.
const ErrRequestMalformed = errors.NotValid

// Operation is a management operation request. Compensating operations
// have the same shape, so that a transaction manager can replay them
// verbatim.
type Operation struct {
	Name       string
	Address    confignode.Address
	Parameters map[string]interface{}
}

// NewOperation returns an operation with no parameters.
func NewOperation(name string, addr confignode.Address) Operation {
	return Operation{
		Name:       name,
		Address:    addr,
		Parameters: make(map[string]interface{}),
	}
}

// With returns a copy of o with the parameter set.
func (o Operation) With(param string, value interface{}) Operation {
	params := make(map[string]interface{}, len(o.Parameters)+1)
	for k, v := range o.Parameters {
		params[k] = v
	}
	params[param] = value
	o.Parameters = params
	return o
}

// Get returns the named parameter and whether it is defined.
func (o Operation) Get(param string) (interface{}, bool) {
	v, ok := o.Parameters[param]
	return v, ok && v != nil
}

// Require returns the named parameter or an ErrRequestMalformed error.
func (o Operation) Require(param string) (interface{}, error) {
	v, ok := o.Get(param)
	if !ok {
		return nil, errors.NotValidf("%s request missing required parameter %q", o.Name, param)
	}
	return v, nil
}

// RequireString returns the named string parameter.
func (o Operation) RequireString(param string) (string, error) {
	v, err := o.Require(param)
	if err != nil {
		return "", errors.Trace(err)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errors.NotValidf("%s request parameter %q of type %T", o.Name, param, v)
	}
	return s, nil
}

// RequireBytes returns the named parameter as bytes. Strings are
// decoded as hex.
func (o Operation) RequireBytes(param string) ([]byte, error) {
	v, err := o.Require(param)
	if err != nil {
		return nil, errors.Trace(err)
	}
	switch b := v.(type) {
	case []byte:
		return b, nil
	case string:
		decoded, err := hex.DecodeString(b)
		if err != nil {
			return nil, errors.NewNotValid(err, fmt.Sprintf("%s request parameter %q", o.Name, param))
		}
		return decoded, nil
	}
	return nil, errors.NotValidf("%s request parameter %q of type %T", o.Name, param, v)
}

// String returns a compact description of the operation.
func (o Operation) String() string {
	keys := make([]string, 0, len(o.Parameters))
	for k := range o.Parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	params := make([]string, len(keys))
	for i, k := range keys {
		params[i] = fmt.Sprintf("%s=%v", k, o.Parameters[k])
	}
	return fmt.Sprintf("%s %s {%s}", o.Name, o.Address, strings.Join(params, ", "))
}
