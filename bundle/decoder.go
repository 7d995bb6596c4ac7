package bundle

// Decode parses a stream produced by EncodeStream or Encoder.Encode.
func Decode(data []byte) (Bundle, error) {
	return DecodeStream(data)
}

// Split decodes data and, only once the whole stream has parsed, hands the
// bundle to w for writing into dir.
func Split(data []byte, dir string, w FileWriter) (Bundle, error) {
	b, err := DecodeStream(data)
	if err != nil {
		return nil, err
	}
	if err := w.WriteFiles(dir, b); err != nil {
		return nil, err
	}
	return b, nil
}
