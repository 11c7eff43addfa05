package trackmeta

// Option configures the Ogg read operations.
//
// Options use the functional options pattern:
//
//	meta, err := trackmeta.ReadOggVorbisComments("song.ogg",
//	    trackmeta.WithPageLimit(200),
//	)
type Option func(*readOptions)

// readOptions holds per-call configuration. Zero values mean "use the
// operation's default": metadata reads walk deeper into the stream than
// quality reads, so the defaults differ per entry point.
type readOptions struct {
	pageLimit   int
	packetLimit int
}

// resolve applies the options on top of operation defaults.
func resolveOptions(defPackets, defPages int, opts []Option) (packets, pages int) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	packets, pages = defPackets, defPages
	if o.packetLimit > 0 {
		packets = o.packetLimit
	}
	if o.pageLimit > 0 {
		pages = o.pageLimit
	}
	return packets, pages
}

// WithPageLimit bounds how many Ogg pages a read will walk before giving
// up on finding its header packets.
//
// The default covers normal files, including tag packets that carry
// embedded art across many pages. Raise it for streams with unusually
// large leading junk; lower it to fail faster on garbage input.
func WithPageLimit(pages int) Option {
	return func(o *readOptions) {
		o.pageLimit = pages
	}
}

// WithPacketLimit bounds how many reassembled packets a read will collect.
func WithPacketLimit(packets int) Option {
	return func(o *readOptions) {
		o.packetLimit = packets
	}
}
