package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Load reads compiled contracts from a combined build artifact file, a JSON
// object keyed by contract name with "abi" and "bytecode" fields. Contracts
// outside the Required set are ignored; a missing required contract is an
// error.
func Load(path string) (map[ContractName]CompiledContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read contract artifacts: %w", err)
	}

	loaded, err := parse(data)
	if err != nil {
		return nil, err
	}

	for _, name := range Required {
		if _, ok := loaded[name]; !ok {
			return nil, fmt.Errorf("artifact file %s is missing required contract %s", path, name)
		}
	}

	return loaded, nil
}

// parse parses contract JSON data into a CompiledContract map.
func parse(data []byte) (map[ContractName]CompiledContract, error) {
	var result map[string]struct {
		ABI      json.RawMessage `json:"abi"`
		Bytecode string          `json:"bytecode"`
	}

	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse compiled contracts: %w", err)
	}

	wanted := make(map[ContractName]struct{}, len(Required))
	for _, name := range Required {
		wanted[name] = struct{}{}
	}

	loaded := make(map[ContractName]CompiledContract)
	for name, contract := range result {
		if _, ok := wanted[ContractName(name)]; !ok {
			continue
		}

		parsedABI, err := abi.JSON(strings.NewReader(string(contract.ABI)))
		if err != nil {
			return nil, fmt.Errorf("failed to parse ABI for %s: %w", name, err)
		}

		bytecodeHex := strings.TrimPrefix(contract.Bytecode, "0x")
		bytecode := common.Hex2Bytes(bytecodeHex)
		if len(bytecode) == 0 {
			return nil, fmt.Errorf("contract %s has no creation bytecode", name)
		}

		loaded[ContractName(name)] = CompiledContract{
			ABI:      parsedABI,
			RawABI:   string(contract.ABI),
			Bytecode: bytecode,
		}
	}

	return loaded, nil
}
