package osc

type testCase struct {
	name    string
	obj     *Message
	raw     []byte
	wantErr bool
}

var messageTestCases = []testCase{
	{
		"no_args",
		&Message{Address: "/a"},
		[]byte("/a\x00\x00,\x00\x00\x00"),
		false,
	},
	{
		"int",
		&Message{Address: "/ab", Arguments: []interface{}{int32(5)}},
		[]byte("/ab\x00,i\x00\x00\x00\x00\x00\x05"),
		false,
	},
	{
		"negative_int",
		&Message{Address: "/left", Arguments: []interface{}{int32(-3)}},
		[]byte("/left\x00\x00\x00,i\x00\x00\xff\xff\xff\xfd"),
		false,
	},
	{
		"float",
		&Message{Address: "/f", Arguments: []interface{}{float32(5.5)}},
		[]byte("/f\x00\x00,f\x00\x00\x40\xb0\x00\x00"),
		false,
	},
	{
		"string",
		&Message{Address: "/s", Arguments: []interface{}{"hi"}},
		[]byte("/s\x00\x00,s\x00\x00hi\x00\x00"),
		false,
	},
	{
		"payloadless",
		&Message{Address: "/tfn", Arguments: []interface{}{true, false, nil}},
		[]byte("/tfn\x00\x00\x00\x00,TFN\x00\x00\x00\x00"),
		false,
	},
	{
		"mixed",
		&Message{Address: "/mix", Arguments: []interface{}{"four", int32(1), true}},
		[]byte("/mix\x00\x00\x00\x00,siT\x00\x00\x00\x00four\x00\x00\x00\x00\x00\x00\x00\x01"),
		false,
	},
}
