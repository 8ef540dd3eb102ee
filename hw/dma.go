package hw

// Channel identifies one DMA channel of a transfer engine.
type Channel uint8

// CompletionFunc is invoked by a transfer engine when a channel finishes
// streaming its buffer. It runs with the paired channel already streaming,
// so it has one scanline period to refill and re-arm before its turn comes
// around again.
type CompletionFunc func(ch Channel)

// TransferEngine abstracts the hardware that streams sample buffers to the
// video output at the fixed sample rate. Completion of one channel chains
// directly to the other in hardware, so the output stream never gaps while
// software refills the finished buffer.
type TransferEngine interface {
	// ClaimChannelPair allocates two channels configured to chain to one
	// another and enables their completion interrupts.
	ClaimChannelPair() (Channel, Channel, error)

	// SetOnComplete installs the completion handler.
	SetOnComplete(fn CompletionFunc)

	// SetSource arms ch to stream buf on its next turn.
	SetSource(ch Channel, buf []uint16)

	// Start triggers the first transfer on ch.
	Start(ch Channel) error
}

// SampleSink receives the quantized composite samples a transfer engine
// streams to the output.
type SampleSink interface {
	PushSample(level uint16)
}
