package artifacts

import "github.com/ethereum/go-ethereum/accounts/abi"

type (
	// ContractName identifies a compiled contract inside the artifact file.
	ContractName string

	// CompiledContract is the ABI and creation bytecode of one contract.
	CompiledContract struct {
		ABI      abi.ABI
		RawABI   string
		Bytecode []byte
	}
)

const (
	// ContractNameTokenPortal is the L1 portal custodying bridged assets.
	ContractNameTokenPortal ContractName = "TokenPortal"
	// ContractNamePortalERC20 is the mintable test asset the portal escrows.
	ContractNamePortalERC20 ContractName = "PortalERC20"
)

// Required lists the contracts the bridge bootstrap cannot run without.
var Required = []ContractName{
	ContractNameTokenPortal,
	ContractNamePortalERC20,
}
