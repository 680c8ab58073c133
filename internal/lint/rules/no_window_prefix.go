// Package rules contains the analysis rules shipped with weblint.
package rules

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/softpare/weblint/internal/lint"
)

const (
	noWindowPrefixCode    = "no-window-prefix"
	noWindowPrefixMessage = "For compatibility between the Window context and the Web Workers, calling Web APIs via `window` is disallowed"
	noWindowPrefixHint    = "Instead, call this API via `self`, `globalThis`, or no extra prefix"
	noWindowPrefixSummary = "Disallows accessing worker-compatible Web APIs through the `window` object"
)

var (
	windowDenyListOnce sync.Once
	windowDenyList     map[string]struct{}
)

// windowDeniedProperty reports whether the property name belongs to the
// catalogue of globals that must stay reachable from non-window contexts.
// The catalogue is built once and never mutated, so concurrent lookups from
// parallel traversals need no locking. Matching is exact, case-sensitive.
func windowDeniedProperty(name string) bool {
	windowDenyListOnce.Do(func() {
		names := []string{
			// Constructor and class-like globals.
			"AbortController",
			"AbortSignal",
			"Blob",
			"BroadcastChannel",
			"ByteLengthQueuingStrategy",
			"Cache",
			"CacheStorage",
			"CanvasGradient",
			"CanvasPattern",
			"CloseEvent",
			"CountQueuingStrategy",
			"Crypto",
			"CryptoKey",
			"CustomEvent",
			"DOMException",
			"DOMMatrix",
			"DOMMatrixReadOnly",
			"DOMPoint",
			"DOMPointReadOnly",
			"DOMQuad",
			"DOMRect",
			"DOMRectReadOnly",
			"DOMStringList",
			"ErrorEvent",
			"Event",
			"EventSource",
			"EventTarget",
			"File",
			"FileList",
			"FileReader",
			"FontFace",
			"FontFaceSet",
			"FontFaceSetLoadEvent",
			"FormData",
			"Headers",
			"IDBCursor",
			"IDBCursorWithValue",
			"IDBDatabase",
			"IDBFactory",
			"IDBIndex",
			"IDBKeyRange",
			"IDBObjectStore",
			"IDBOpenDBRequest",
			"IDBRequest",
			"IDBTransaction",
			"IDBVersionChangeEvent",
			"ImageBitmap",
			"ImageBitmapRenderingContext",
			"ImageData",
			"MediaCapabilities",
			"MessageChannel",
			"MessageEvent",
			"MessagePort",
			"NetworkInformation",
			"Notification",
			"Path2D",
			"Performance",
			"PerformanceEntry",
			"PerformanceMark",
			"PerformanceMeasure",
			"PerformanceObserver",
			"PerformanceObserverEntryList",
			"PerformanceResourceTiming",
			"PerformanceServerTiming",
			"PermissionStatus",
			"Permissions",
			"ProgressEvent",
			"PromiseRejectionEvent",
			"PushManager",
			"PushSubscription",
			"PushSubscriptionOptions",
			"ReadableStream",
			"ReadableStreamDefaultController",
			"ReadableStreamDefaultReader",
			"Request",
			"Response",
			"SecurityPolicyViolationEvent",
			"ServiceWorker",
			"ServiceWorkerContainer",
			"ServiceWorkerRegistration",
			"StorageManager",
			"SubtleCrypto",
			"TextDecoder",
			"TextDecoderStream",
			"TextEncoder",
			"TextEncoderStream",
			"TextMetrics",
			"TransformStream",
			"TransformStreamDefaultController",
			"URL",
			"URLSearchParams",
			"WebGL2RenderingContext",
			"WebGLActiveInfo",
			"WebGLBuffer",
			"WebGLContextEvent",
			"WebGLFramebuffer",
			"WebGLProgram",
			"WebGLQuery",
			"WebGLRenderbuffer",
			"WebGLRenderingContext",
			"WebGLSampler",
			"WebGLShader",
			"WebGLShaderPrecisionFormat",
			"WebGLSync",
			"WebGLTexture",
			"WebGLTransformFeedback",
			"WebGLUniformLocation",
			"WebGLVertexArrayObject",
			"WebSocket",
			"Worker",
			"WritableStream",
			"WritableStreamDefaultController",
			"WritableStreamDefaultWriter",
			"XMLHttpRequest",
			"XMLHttpRequestEventTarget",
			"XMLHttpRequestUpload",
			"console",
			"WebAssembly",
			// Instance-accessible globals normally reached via self/globalThis.
			"name",
			"navigator",
			"self",
			"close",
			"postMessage",
			"dispatchEvent",
			"cancelAnimationFrame",
			"requestAnimationFrame",
			"onerror",
			"onlanguagechange",
			"onmessage",
			"onmessageerror",
			"onoffline",
			"ononline",
			"onrejectionhandled",
			"onunhandledrejection",
			"caches",
			"crossOriginIsolated",
			"crypto",
			"indexedDB",
			"isSecureContext",
			"origin",
			"performance",
			"atob",
			"btoa",
			"clearInterval",
			"clearTimeout",
			"createImageBitmap",
			"fetch",
			"queueMicrotask",
			"setInterval",
			"setTimeout",
			"addEventListener",
			"removeEventListener",
			// Platform global object.
			"Deno",
		}
		windowDenyList = make(map[string]struct{}, len(names))
		for _, n := range names {
			windowDenyList[n] = struct{}{}
		}
	})
	_, ok := windowDenyList[name]
	return ok
}

// NoWindowPrefix flags `window.<prop>` accesses (dotted or computed with a
// statically known key) when the property must remain reachable from worker
// contexts, where `window` does not exist.
type NoWindowPrefix struct{}

func (NoWindowPrefix) Code() string    { return noWindowPrefixCode }
func (NoWindowPrefix) Tags() []string  { return []string{lint.TagRecommended} }
func (NoWindowPrefix) Summary() string { return noWindowPrefixSummary }

func (r NoWindowPrefix) Register(reg *lint.Registry) {
	reg.On("member_expression", r.check)
	reg.On("subscript_expression", r.check)
}

// check evaluates one member access. Every failed condition means "not a
// violation" and is skipped silently; there is no error path.
func (r NoWindowPrefix) check(node *sitter.Node, ctx *lint.Context) {
	// Only the outermost link of a chain is inspected. Skipping any node that
	// is the object of an enclosing access both avoids duplicate reports on
	// chains like `window.fetch.bind` and keeps each expression evaluated at
	// most once.
	if isObjectOfMemberAccess(node) {
		return
	}

	obj := node.ChildByFieldName("object")
	if obj == nil || obj.Type() != "identifier" {
		return
	}
	if lint.NodeContent(obj, ctx.Source()) != "window" {
		return
	}
	// A local binding literally named `window` is not the global object.
	if !ctx.IsGlobalRef(obj) {
		return
	}

	prop, ok := lint.StaticPropertyName(node, ctx.Source())
	if !ok {
		// Computed access through a variable or interpolated template: the
		// name cannot be determined without executing the program, so do not
		// guess.
		return
	}
	if !windowDeniedProperty(prop) {
		return
	}

	ctx.Report(node, noWindowPrefixCode, noWindowPrefixMessage, noWindowPrefixHint)
}

// isObjectOfMemberAccess reports whether node sits in the object position of
// an enclosing member or subscript expression.
func isObjectOfMemberAccess(node *sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	switch parent.Type() {
	case "member_expression", "subscript_expression":
		obj := parent.ChildByFieldName("object")
		return obj != nil &&
			obj.StartByte() == node.StartByte() &&
			obj.EndByte() == node.EndByte()
	}
	return false
}
