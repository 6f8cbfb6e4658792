package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	ethKeystore "github.com/ethereum/go-ethereum/accounts/keystore"
	ethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/hermeznetwork/tracerr"
	"github.com/joho/godotenv"
	hdwallet "github.com/miguelmota/go-ethereum-hdwallet"
	"github.com/urfave/cli/v2"

	"github.com/omgnetwork/go-plasma/common"
	"github.com/omgnetwork/go-plasma/config"
	"github.com/omgnetwork/go-plasma/eth"
	"github.com/omgnetwork/go-plasma/exitdb"
	"github.com/omgnetwork/go-plasma/log"
	"github.com/omgnetwork/go-plasma/watcher"
)

const (
	flagCfg      = "cfg"
	flagAddress  = "address"
	flagAmount   = "amount"
	flagCurrency = "currency"
	flagUtxoPos  = "position"
	flagSK       = "privatekey"
	flagMnemonic = "mnemonic"
	flagMaxExits = "max-exits"
)

var (
	// version represents the program based on the git tag
	version = "v0.1.0"
	// commit represents the program based on the git commit
	commit = "dev"
	// date represents the date of application was built
	date = ""
)

func cmdVersion(*cli.Context) error {
	fmt.Printf("Version = \"%v\"\n", version)
	fmt.Printf("Build = \"%v\"\n", commit)
	fmt.Printf("Date = \"%v\"\n", date)
	return nil
}

func loadConfig(c *cli.Context) (*config.Client, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug("variables loaded from .env file")
	}
	path := c.String(flagCfg)
	if path == "" {
		path = os.Getenv("PLASMA_CONFIG")
	}
	if path == "" {
		return nil, tracerr.Wrap(fmt.Errorf("configuration file not set; use --%v or PLASMA_CONFIG", flagCfg))
	}
	cfg, err := config.LoadClient(path)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	log.Init(cfg.Log.Level)
	return cfg, nil
}

func newWatcher(cfg *config.Client) *watcher.Client {
	return watcher.NewClient(cfg.Watcher.URL)
}

func newRootchain(cfg *config.Client) (*eth.Client, error) {
	ethClient, err := ethclient.Dial(cfg.Web3.URL)
	if err != nil {
		return nil, tracerr.Wrap(err)
	}
	ethCfg := eth.EthereumConfig{
		CallGasLimit:        cfg.Ethereum.CallGasLimit,
		GasPriceDiv:         cfg.Ethereum.GasPriceDiv,
		ReceiptTimeout:      cfg.Ethereum.ReceiptTimeout.Duration,
		IntervalReceiptLoop: cfg.Ethereum.IntervalReceiptLoop.Duration,
	}
	var account *accounts.Account
	var ks *ethKeystore.KeyStore
	if cfg.Keystore.Path != "" {
		ks = ethKeystore.NewKeyStore(cfg.Keystore.Path,
			ethKeystore.StandardScryptN, ethKeystore.StandardScryptP)
		if len(ks.Accounts()) == 0 {
			return nil, tracerr.Wrap(fmt.Errorf("keystore %v holds no accounts", cfg.Keystore.Path))
		}
		acc := ks.Accounts()[0]
		if err := ks.Unlock(acc, cfg.Keystore.Password); err != nil {
			return nil, tracerr.Wrap(err)
		}
		account = &acc
	}
	return eth.NewClient(ethClient, account, ks, &ethCfg, cfg.SmartContracts.PlasmaFramework)
}

func parseAddress(c *cli.Context) (ethCommon.Address, error) {
	addrStr := c.String(flagAddress)
	if !ethCommon.IsHexAddress(addrStr) {
		return ethCommon.Address{}, tracerr.Wrap(
			fmt.Errorf("invalid address %q", addrStr))
	}
	return ethCommon.HexToAddress(addrStr), nil
}

func parseAmount(c *cli.Context) (*big.Int, error) {
	amount, ok := new(big.Int).SetString(c.String(flagAmount), 10)
	if !ok || amount.Sign() <= 0 {
		return nil, tracerr.Wrap(fmt.Errorf("invalid amount %q", c.String(flagAmount)))
	}
	return amount, nil
}

func parseCurrency(c *cli.Context) (ethCommon.Address, error) {
	currencyStr := c.String(flagCurrency)
	if currencyStr == "" {
		return common.EthCurrency, nil
	}
	if !ethCommon.IsHexAddress(currencyStr) {
		return ethCommon.Address{}, tracerr.Wrap(
			fmt.Errorf("invalid currency %q", currencyStr))
	}
	return ethCommon.HexToAddress(currencyStr), nil
}

func parsePosition(c *cli.Context) (common.UtxoPosition, error) {
	pos, ok := new(big.Int).SetString(c.String(flagUtxoPos), 10)
	if !ok {
		return common.UtxoPosition{}, tracerr.Wrap(
			fmt.Errorf("invalid position %q", c.String(flagUtxoPos)))
	}
	return common.DecodeUtxoPosition(pos)
}

func cmdBalance(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	address, err := parseAddress(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	balances, err := newWatcher(cfg).GetBalance(c.Context, address)
	if err != nil {
		return tracerr.Wrap(err)
	}
	for _, b := range balances {
		fmt.Printf("%v %v\n", b.Currency.Address().Hex(), string(b.Amount))
	}
	return nil
}

func cmdUtxos(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	address, err := parseAddress(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	utxos, err := newWatcher(cfg).GetUtxos(c.Context, address)
	if err != nil {
		return tracerr.Wrap(err)
	}
	for _, u := range utxos {
		fmt.Printf("position=%v currency=%v amount=%v\n",
			string(u.UtxoPos), u.Currency.Address().Hex(), string(u.Amount))
	}
	return nil
}

func cmdStatus(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	status, err := newWatcher(cfg).GetStatus(c.Context)
	if err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("last validated child block = %v\n", status.LastValidatedChildBlockNumber)
	fmt.Printf("last mined child block    = %v\n", status.LastMinedChildBlockNumber)
	fmt.Printf("byzantine events          = %v\n", len(status.ByzantineEvents))
	fmt.Printf("in-flight exits           = %v\n", len(status.InFlightExits))
	return nil
}

func cmdDeposit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	client, err := newRootchain(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	owner, err := client.EthAddress()
	if err != nil {
		return tracerr.Wrap(err)
	}
	amount, err := parseAmount(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	currency, err := parseCurrency(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if common.ResolveAssetKind(currency) == common.AssetErc20 {
		balance, err := client.TokenBalance(c.Context, currency, *owner)
		if err != nil {
			return tracerr.Wrap(err)
		}
		if balance.Cmp(amount) < 0 {
			return tracerr.Wrap(fmt.Errorf(
				"token balance %v does not cover deposit amount %v", balance, amount))
		}
		if _, err := client.ApproveToken(c.Context, currency, amount); err != nil {
			return tracerr.Wrap(err)
		}
	}
	tx, err := client.Deposit(c.Context, eth.DepositParams{
		Owner:    *owner,
		Amount:   amount,
		Currency: currency,
	})
	if err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("deposit submitted: %v\n", tx.Hash().Hex())
	return nil
}

func cmdStartExit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	client, err := newRootchain(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	position, err := parsePosition(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	exitData, err := newWatcher(cfg).GetExitData(c.Context, position)
	if err != nil {
		return tracerr.Wrap(err)
	}
	tx, err := client.StartStandardExit(c.Context, eth.StartStandardExitParams{
		UtxoPos:        position,
		TxBytes:        exitData.TxBytes,
		InclusionProof: exitData.Proof,
	})
	if err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("standard exit submitted: %v\n", tx.Hash().Hex())
	if cfg.ExitDB.Path == "" {
		return nil
	}
	return persistExit(cfg, client, position, exitData.TxBytes, tx.Hash().Hex())
}

func persistExit(cfg *config.Client, client *eth.Client, position common.UtxoPosition,
	txBytes []byte, txHash string) error {
	db, err := exitdb.NewExitDB(cfg.ExitDB.Path)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Errorw("closing exit store", "err", err)
		}
	}()
	exitID, err := client.GetStandardExitID(context.Background(), position, txBytes)
	if err != nil {
		return tracerr.Wrap(err)
	}
	record := client.Tracker().Get(exitID)
	if record == nil {
		return nil
	}
	pos, err := position.Encode()
	if err != nil {
		return tracerr.Wrap(err)
	}
	return db.Save(&exitdb.TrackedExit{
		Record:  *record,
		UtxoPos: pos,
		TxHash:  txHash,
	})
}

func cmdExitQueue(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	client, err := newRootchain(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	currency, err := parseCurrency(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	queue, err := client.GetExitQueue(c.Context, currency)
	if err != nil {
		return tracerr.Wrap(err)
	}
	for _, entry := range queue {
		fmt.Printf("exitableAt=%v exitId=%v\n", entry.ExitableAt, entry.ExitID)
	}
	return nil
}

func cmdProcessExits(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	client, err := newRootchain(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}
	currency, err := parseCurrency(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	tx, err := client.ProcessExits(c.Context, eth.ProcessExitsParams{
		Token:             currency,
		TopExitID:         big.NewInt(0),
		MaxExitsToProcess: c.Uint64(flagMaxExits),
	})
	if err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("process exits submitted: %v\n", tx.Hash().Hex())
	return nil
}

func cmdImportKey(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return tracerr.Wrap(err)
	}
	if cfg.Keystore.Path == "" {
		return tracerr.Wrap(fmt.Errorf("keystore path not configured"))
	}
	ks := ethKeystore.NewKeyStore(cfg.Keystore.Path,
		ethKeystore.StandardScryptN, ethKeystore.StandardScryptP)

	if mnemonic := c.String(flagMnemonic); mnemonic != "" {
		wallet, err := hdwallet.NewFromMnemonic(mnemonic)
		if err != nil {
			return tracerr.Wrap(err)
		}
		path := hdwallet.MustParseDerivationPath("m/44'/60'/0'/0/0")
		account, err := wallet.Derive(path, false)
		if err != nil {
			return tracerr.Wrap(err)
		}
		sk, err := wallet.PrivateKey(account)
		if err != nil {
			return tracerr.Wrap(err)
		}
		acc, err := ks.ImportECDSA(sk, cfg.Keystore.Password)
		if err != nil {
			return tracerr.Wrap(err)
		}
		fmt.Printf("imported account: %v\n", acc.Address.Hex())
		return nil
	}

	skHex := strings.TrimPrefix(c.String(flagSK), "0x")
	sk, err := crypto.HexToECDSA(skHex)
	if err != nil {
		return tracerr.Wrap(err)
	}
	acc, err := ks.ImportECDSA(sk, cfg.Keystore.Password)
	if err != nil {
		return tracerr.Wrap(err)
	}
	fmt.Printf("imported account: %v\n", acc.Address.Hex())
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "plasma-cli"
	app.Version = version
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:     flagCfg,
			Usage:    "Client configuration `FILE`",
			Required: false,
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:   "version",
			Usage:  "Show the application version and build",
			Action: cmdVersion,
		},
		{
			Name:   "balance",
			Usage:  "Show the childchain balance of an address",
			Action: cmdBalance,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagAddress,
					Usage:    "account `ADDRESS`",
					Required: true,
				}),
		},
		{
			Name:   "utxos",
			Usage:  "List the spendable outputs of an address",
			Action: cmdUtxos,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagAddress,
					Usage:    "account `ADDRESS`",
					Required: true,
				}),
		},
		{
			Name:   "status",
			Usage:  "Show the watcher's view of the childchain",
			Action: cmdStatus,
			Flags:  flags,
		},
		{
			Name:   "deposit",
			Usage:  "Deposit funds onto the childchain",
			Action: cmdDeposit,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagAmount,
					Usage:    "`AMOUNT` in wei (or the token's smallest unit)",
					Required: true,
				},
				&cli.StringFlag{
					Name:     flagCurrency,
					Usage:    "token `ADDRESS` (omit for the native asset)",
					Required: false,
				}),
		},
		{
			Name:   "start-exit",
			Usage:  "Start a standard exit for one output",
			Action: cmdStartExit,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagUtxoPos,
					Usage:    "packed `POSITION` of the exiting output",
					Required: true,
				}),
		},
		{
			Name:   "exit-queue",
			Usage:  "Show the exit queue of a currency",
			Action: cmdExitQueue,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagCurrency,
					Usage:    "token `ADDRESS` (omit for the native asset)",
					Required: false,
				}),
		},
		{
			Name:   "process-exits",
			Usage:  "Process matured exits from the queue",
			Action: cmdProcessExits,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagCurrency,
					Usage:    "token `ADDRESS` (omit for the native asset)",
					Required: false,
				},
				&cli.Uint64Flag{
					Name:  flagMaxExits,
					Usage: "maximum `NUMBER` of exits to process",
					Value: 1,
				}),
		},
		{
			Name:   "import-key",
			Usage:  "Import an account into the keystore",
			Action: cmdImportKey,
			Flags: append(flags,
				&cli.StringFlag{
					Name:     flagSK,
					Usage:    "ethereum `PRIVATE_KEY` in hex",
					Required: false,
				},
				&cli.StringFlag{
					Name:     flagMnemonic,
					Usage:    "BIP39 `MNEMONIC` to derive the account from",
					Required: false,
				}),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Printf("\nError: %v\n", tracerr.Sprint(err))
		os.Exit(1)
	}
}
