// Copyright 2013 - 2015 Sebastian Ruml <sebastian.ruml@gmail.com>
// Copyright 2021 - 2022 Mendel Greenberg <mendel@chabad360.me>

//Package osc encodes OpenSoundControl messages and sends them over UDP.
//
//This implementation is based on the Open Sound Control 1.0 Specification (http://opensoundcontrol.org/spec-1_0.html).
//
//Features
//
//- Supports OSC messages with the following TypeTags:
//
//	'i' (int32)
//	'f' (float32)
//	's' (string)
//	'T' (true)
//	'F' (false)
//	'N' (nil)
//
//- Arguments are classified by value: integral numbers become 'i', other
//numbers 'f', and anything that is not a number, string, bool or nil is
//sent as its string form. Encoding never fails.
//
//- Fire-and-forget UDP sending, one socket per message.
//
//Packets
//
//Every OSC message consists of an address, a type tag string starting with ','
//and the argument payload. Each string block is NUL terminated and padded to
//a multiple of 4 bytes; numeric arguments are 4 bytes, big-endian.
//
//Usage
//
//Sender example:
//  s := osc.NewSender(logger)
//  s.Send("127.0.0.1", 9000, "/osc/address", 111, true, "hello")
//  s.Wait()
//
//Monitor example:
//  server := &osc.Server{
//      Addr: "127.0.0.1:9000",
//      Handler: func(msg *osc.Message, addr net.Addr) {
//          fmt.Println(addr, msg)
//      },
//  }
//  server.ListenAndServe(ctx)
package osc
