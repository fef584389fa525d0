// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2026 The Whippet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/whippetcoin/whippetd/blockchain"
	"github.com/whippetcoin/whippetd/chaincfg"
	"github.com/whippetcoin/whippetd/headerdb"
	wlog "github.com/whippetcoin/whippetd/internal/log"
)

// importCmd defines the configuration options for the import command.
type importCmd struct {
	Batch    int  `long:"batch" description:"Number of headers written per database transaction"`
	Verify   bool `long:"verify" description:"Check the difficulty of every header before storing it"`
	PoW      bool `long:"pow" description:"Also check the header hashes against their targets when verifying"`
	Progress int  `short:"p" long:"progress" description:"Show a progress message each time this number of seconds have passed -- Use 0 to disable progress announcements"`

	Args struct {
		InFile string `positional-arg-name:"file" description:"JSON lines header dump"`
	} `positional-args:"yes" required:"yes"`
}

// importCfg defines the configuration options for the command.
var importCfg = defaultImportCmd()

// defaultImportCmd returns the import options before the command line is
// applied.
func defaultImportCmd() importCmd {
	return importCmd{
		Batch:    1000,
		Progress: 10,
	}
}

// headerRecord is a single line of a header dump.
type headerRecord struct {
	Height int32  `json:"height"`
	Time   int64  `json:"time"`
	Bits   string `json:"bits"`
	Hash   string `json:"hash"`
}

// header converts the record into a header.
func (r *headerRecord) header() (*blockchain.Header, error) {
	if r.Height < 0 {
		return nil, fmt.Errorf("negative height %d", r.Height)
	}
	bits, err := parseBits(r.Bits)
	if err != nil {
		return nil, err
	}
	hash, err := chainhash.NewHashFromStr(r.Hash)
	if err != nil {
		return nil, fmt.Errorf("invalid hash %q: %w", r.Hash, err)
	}
	return &blockchain.Header{
		Height:    r.Height,
		Timestamp: r.Time,
		Bits:      bits,
		Hash:      *hash,
	}, nil
}

// headerImporter houses information about an ongoing import from a header
// dump to the header database.
type headerImporter struct {
	store     *headerdb.Store
	params    *chaincfg.Params
	batchSize int
	verify    bool
	flags     blockchain.BehaviorFlags
	progress  time.Duration

	processQueue chan *blockchain.Header
	errChan      chan error
	quit         chan struct{}

	tip              *blockchain.Header
	pending          []*blockchain.Header
	headersImported  int64
	receivedLogCount int64
	lastLogTime      time.Time
}

// newHeaderImporter returns an importer appending to the passed store.
func newHeaderImporter(store *headerdb.Store, params *chaincfg.Params,
	cmd *importCmd) (*headerImporter, error) {

	tip, err := store.Tip()
	if err != nil && !errors.Is(err, headerdb.ErrEmpty) {
		return nil, err
	}

	batchSize := cmd.Batch
	if batchSize < 1 {
		batchSize = 1
	}
	flags := blockchain.BFNoPoWCheck
	if cmd.PoW {
		flags = blockchain.BFNone
	}
	return &headerImporter{
		store:        store,
		params:       params,
		batchSize:    batchSize,
		verify:       cmd.Verify,
		flags:        flags,
		progress:     time.Duration(cmd.Progress) * time.Second,
		processQueue: make(chan *blockchain.Header, 64),
		errChan:      make(chan error, 1),
		quit:         make(chan struct{}),
		tip:          tip,
		lastLogTime:  time.Now(),
	}, nil
}

// readHandler decodes headers from r and queues them for processing.  This
// allows decoding to take place in parallel with database writes.  It must
// be run as a goroutine.
func (im *headerImporter) readHandler(r io.Reader) {
	// Close the processing channel to signal no more headers are coming.
	defer close(im.processQueue)

	dec := json.NewDecoder(r)
	for n := 1; ; n++ {
		var record headerRecord
		if err := dec.Decode(&record); err != nil {
			if err != io.EOF {
				im.errChan <- fmt.Errorf("reading header %d: %w", n, err)
			}
			return
		}
		header, err := record.header()
		if err != nil {
			im.errChan <- fmt.Errorf("header %d: %w", n, err)
			return
		}

		select {
		case im.processQueue <- header:
		case <-im.quit:
			return
		}
	}
}

// ancestors returns up to n headers below the importer tip, drawing on the
// headers waiting to be written before the stored ones.
func (im *headerImporter) ancestors(n int) (blockchain.HeaderSlice, error) {
	if len(im.pending) == 0 {
		return im.store.AncestorWindow(im.tip, n)
	}

	// The tip is the last pending header.
	window := make(blockchain.HeaderSlice, 0, n)
	for i := len(im.pending) - 2; i >= 0 && len(window) < n; i-- {
		window = append(window, im.pending[i])
	}
	if len(window) < n {
		stored, err := im.store.AncestorWindow(im.pending[0], n-len(window))
		if err != nil {
			return nil, err
		}
		window = append(window, stored...)
	}
	return window, nil
}

// processHeader checks the header extends the importer tip, verifies it
// when requested and queues it for the next database write.
func (im *headerImporter) processHeader(header *blockchain.Header) error {
	nextHeight := int32(0)
	if im.tip != nil {
		nextHeight = im.tip.Height + 1
	}
	if header.Height != nextHeight {
		return fmt.Errorf("header %v has height %d, want %d", header.Hash,
			header.Height, nextHeight)
	}

	if im.verify {
		rules, err := im.params.RuleSetForHeight(header.Height)
		if err != nil {
			return err
		}
		window, err := im.ancestors(ancestorsNeeded(rules))
		if err != nil {
			return err
		}
		err = blockchain.CheckHeader(im.params, header, im.tip, window,
			im.flags)
		if err != nil {
			return fmt.Errorf("header %v at height %d: %w", header.Hash,
				header.Height, err)
		}
	}

	im.pending = append(im.pending, header)
	im.tip = header
	if len(im.pending) >= im.batchSize {
		return im.flush()
	}
	return nil
}

// flush writes the pending headers to the database.
func (im *headerImporter) flush() error {
	if len(im.pending) == 0 {
		return nil
	}
	if err := im.store.PutHeaders(im.pending); err != nil {
		return err
	}
	im.headersImported += int64(len(im.pending))
	im.receivedLogCount += int64(len(im.pending))
	im.pending = nil
	im.logProgress()
	return nil
}

// logProgress logs import progress as an information message.  In order to
// prevent spam, it limits logging to one message every progress interval
// with duration and totals included.
func (im *headerImporter) logProgress() {
	if im.progress <= 0 {
		return
	}
	now := time.Now()
	duration := now.Sub(im.lastLogTime)
	if duration < im.progress {
		return
	}

	// Truncate the duration to 10s of milliseconds.
	tDuration := duration.Truncate(10 * time.Millisecond)
	log.Infof("Imported %d %s in the last %s (height %d, %s)",
		im.receivedLogCount, wlog.PickNoun(uint64(im.receivedLogCount),
			"header", "headers"), tDuration, im.tip.Height,
		time.Unix(im.tip.Timestamp, 0).UTC())

	im.receivedLogCount = 0
	im.lastLogTime = now
}

// Import reads every header from r and appends them to the store.  Headers
// accepted before a failure are still written.
func (im *headerImporter) Import(r io.Reader) error {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		im.readHandler(r)
	}()
	defer func() {
		close(im.quit)
		wg.Wait()
	}()

	for header := range im.processQueue {
		if err := im.processHeader(header); err != nil {
			if flushErr := im.flush(); flushErr != nil {
				log.Errorf("Unable to write accepted headers: %v",
					flushErr)
			}
			return err
		}
	}

	select {
	case err := <-im.errChan:
		if flushErr := im.flush(); flushErr != nil {
			log.Errorf("Unable to write accepted headers: %v", flushErr)
		}
		return err
	default:
	}
	return im.flush()
}

// Execute is the main entry point for the command.  It's invoked by the parser.
func (cmd *importCmd) Execute(args []string) error {
	// Setup the global config options and ensure they are valid.
	if err := setupGlobalConfig(); err != nil {
		return err
	}

	fi, err := os.Open(cmd.Args.InFile)
	if err != nil {
		return err
	}
	defer fi.Close()

	store, err := loadHeaderDB(true)
	if err != nil {
		return err
	}
	defer store.Close()

	importer, err := newHeaderImporter(store, activeNetParams, cmd)
	if err != nil {
		return err
	}

	log.Infof("Importing headers from %s", cmd.Args.InFile)
	err = importer.Import(fi)
	fmt.Fprintf(output, "Imported %d %s\n", importer.headersImported,
		wlog.PickNoun(uint64(importer.headersImported), "header", "headers"))
	if err != nil {
		return err
	}
	if importer.tip != nil {
		fmt.Fprintf(output, "Tip:          %v (height %d)\n",
			importer.tip.Hash, importer.tip.Height)
	}
	return nil
}
